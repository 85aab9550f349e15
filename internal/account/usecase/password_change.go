package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type PasswordChangeInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,password"`
	SecToken    string `validate:"required"`
}

type PasswordChangeOutput struct {
	UserID string
}

// PasswordChange replaces the password of the authenticated user. It demands
// the old password on top of the security token.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) (*PasswordChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordChange")
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

	if err := s.requireValidSecurityToken(ctx, user.ID, in.SecToken); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(user.Password, in.OldPassword) {
		slog.WarnContext(ctx, "old password does not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("old password is incorrect", goerror.CodeInvalidInput)
	}

	if err := s.applyPassword(ctx, user.ID, user.Username, in.NewPassword); err != nil {
		return nil, err
	}

	if err := s.rotateOtpRecord(ctx, user.ID); err != nil {
		return nil, err
	}

	return &PasswordChangeOutput{UserID: user.ID}, nil
}

// applyPassword hashes and stores the new password, then pushes it to the
// identity provider so both logins stay in step.
func (s *Usecase) applyPassword(ctx context.Context, userID, username, newPassword string) error {
	hashed, err := s.bcrypt.Hash(newPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPassword(ctx, userID, string(hashed)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.idp.ChangePassword(ctx, username, newPassword); err != nil {
		slog.ErrorContext(ctx, "failed to sync password to identity provider", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
