package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies the credentials locally, then performs the password grant
// at the identity provider. The access token is minted here; the refresh
// token comes from the provider so Refresh can exchange it later.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	username := strings.TrimSpace(in.Username)
	user, err := s.repoDB.GetUserByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", username)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid username or password", goerror.CodeUnauthorized)
	}

	pair, err := s.idp.GetToken(ctx, username, in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get token from identity provider", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken:  acToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, user *entity.User) error {
	if user.IsDeleted {
		slog.WarnContext(ctx, "user account is deleted", "user_id", user.ID)
		return goerror.NewBusiness("account is deleted", goerror.CodeForbidden)
	}

	switch user.Status.Ensure() {
	case entity.UserStatusDisabled:
		slog.WarnContext(ctx, "user account is disabled", "user_id", user.ID)
		return goerror.NewBusiness("account is disabled", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is inactive", "user_id", user.ID)
		return goerror.NewBusiness("account is not active", goerror.CodeForbidden)

	default:
		return nil
	}
}
