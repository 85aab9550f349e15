package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type PhoneChangeInput struct {
	Phone    string `validate:"required,e164"`
	SecToken string `validate:"required"`
}

type PhoneChangeOutput struct {
	UserID string
	Phone  string
}

// PhoneChange commits the number proven by PhoneVerify. The security token
// is single use and is burned once the change lands everywhere.
func (s *Usecase) PhoneChange(ctx context.Context, in PhoneChangeInput) (*PhoneChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "PhoneChange")
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

	if err := s.repoDB.UpdateUserPhone(ctx, user.ID, in.Phone); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user phone", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user.Phone = in.Phone
	if err := s.idp.UpdateUser(ctx, *user); err != nil {
		slog.ErrorContext(ctx, "failed to sync phone to identity provider", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.rotateOtpRecord(ctx, user.ID); err != nil {
		return nil, err
	}

	return &PhoneChangeOutput{UserID: user.ID, Phone: in.Phone}, nil
}
