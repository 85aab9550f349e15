package usecase

import (
	"context"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type UserDetailInput struct {
	ID string `validate:"required,uuid"`
}

type UserDetailOutput struct {
	User entity.User
}

func (s *Usecase) UserDetail(ctx context.Context, in UserDetailInput) (*UserDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDetail")
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

	return &UserDetailOutput{User: *user}, nil
}
