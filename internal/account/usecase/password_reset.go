package usecase

import (
	"context"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type PasswordResetInput struct {
	UserID      string `validate:"required,uuid"`
	NewPassword string `validate:"required,password"`
	SecToken    string `validate:"required"`
}

type PasswordResetOutput struct {
	UserID string
}

// PasswordReset sets a new password for a user who cannot log in. It is an
// unauthenticated endpoint, so the security token is the sole proof that the
// caller completed the OTP exchange.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) (*PasswordResetOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.getUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.requireValidSecurityToken(ctx, user.ID, in.SecToken); err != nil {
		return nil, err
	}

	if err := s.applyPassword(ctx, user.ID, user.Username, in.NewPassword); err != nil {
		return nil, err
	}

	if err := s.rotateOtpRecord(ctx, user.ID); err != nil {
		return nil, err
	}

	return &PasswordResetOutput{UserID: user.ID}, nil
}
