package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type UserDeleteInput struct {
	ID string `validate:"required,uuid"`
}

type UserDeleteOutput struct {
	ID string
}

// UserDelete soft-deletes the local row and removes the account at the
// identity provider so the credentials stop working immediately.
func (s *Usecase) UserDelete(ctx context.Context, in UserDeleteInput) (*UserDeleteOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDelete")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.getUser(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repoDB.MarkUserDeleted(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark user deleted", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.idp.DeleteUser(ctx, user.Username); err != nil {
		slog.ErrorContext(ctx, "failed to delete user at identity provider", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserDeleteOutput{ID: user.ID}, nil
}
