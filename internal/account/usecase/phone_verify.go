package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type PhoneVerifyInput struct {
	Phone string `validate:"required,e164"`
}

type PhoneVerifyOutput struct {
	UserID string
}

// PhoneVerify starts a phone change. It proves ownership of the new number
// by sending the code there, and tells the current email address about it.
func (s *Usecase) PhoneVerify(ctx context.Context, in PhoneVerifyInput) (*PhoneVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "PhoneVerify")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.getUser(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	owner, err := s.repoDB.GetUserByPhone(ctx, in.Phone)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by phone", "error", err)
		return nil, goerror.NewServer(err)
	}
	if owner != nil && owner.ID != user.ID {
		slog.WarnContext(ctx, "phone number already taken", "user_id", user.ID)
		return nil, goerror.NewBusiness("phone number already in use", goerror.CodeConflict)
	}

	code, err := s.issueOTP(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.dispatchOTP(ctx, code, []string{user.Email}, []string{in.Phone})

	return &PhoneVerifyOutput{UserID: user.ID}, nil
}
