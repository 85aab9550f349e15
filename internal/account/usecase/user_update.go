package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type UserUpdateInput struct {
	ID           string  `validate:"required,uuid"`
	FirstName    *string `validate:"omitempty,max=100"`
	LastName     *string `validate:"omitempty,max=100"`
	Email        *string `validate:"omitempty,email"`
	Phone        *string `validate:"omitempty,e164"`
	NationalID   *string `validate:"omitempty,max=50"`
	IDExpiration *time.Time
	Status       *string `validate:"omitempty,oneof=active inactive disabled"`
	IsVerified   *bool
}

type UserUpdateOutput struct {
	User entity.User
}

// UserUpdate patches the provided fields and mirrors the result to the
// identity provider.
func (s *Usecase) UserUpdate(ctx context.Context, in UserUpdateInput) (*UserUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserUpdate")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.getUser(ctx, in.ID); err != nil {
		return nil, err
	}

	patch := entity.PatchUser{
		ID:           in.ID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		NationalID:   in.NationalID,
		IDExpiration: in.IDExpiration,
		IsVerified:   in.IsVerified,
	}
	if in.Status != nil {
		sts := entity.UserStatus(*in.Status).Ensure()
		patch.Status = &sts
	}

	if err := s.repoDB.PatchUser(ctx, patch); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "user update conflicts with existing account", "user_id", in.ID)
			return nil, goerror.NewBusiness("email or phone already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo patch user", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.getUser(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.idp.UpdateUser(ctx, *user); err != nil {
		slog.ErrorContext(ctx, "failed to sync user to identity provider", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserUpdateOutput{User: *user}, nil
}
