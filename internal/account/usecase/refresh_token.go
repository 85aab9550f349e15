package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
	Username     string `validate:"required"`
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken exchanges the provider refresh token for a new pair and mints
// a fresh local access token for the same user.
func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	user, err := s.repoDB.GetUserByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", username)
		return nil, goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.idp.RefreshToken(ctx, in.RefreshToken)
	if err != nil {
		slog.WarnContext(ctx, "failed to refresh token at identity provider", "user_id", user.ID, "error", err)
		return nil, goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}

	acToken, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RefreshTokenOutput{
		AccessToken:  acToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
