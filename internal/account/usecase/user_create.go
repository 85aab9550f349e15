package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type UserCreateInput struct {
	FirstName    string `validate:"required,max=100"`
	LastName     string `validate:"max=100"`
	Username     string `validate:"required,email"`
	Email        string `validate:"required,email"`
	Phone        string `validate:"required,e164"`
	Password     string `validate:"required,password"`
	NationalID   string `validate:"omitempty,max=50"`
	BirthDate    *time.Time
	IDExpiration *time.Time
}

type UserCreateOutput struct {
	ID string
}

// UserCreate registers the account at the identity provider first, then
// stores the local row carrying the provider id. New accounts start inactive
// and unverified until the OTP flow confirms the phone.
func (s *Usecase) UserCreate(ctx context.Context, in UserCreateInput) (*UserCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashed, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.User{
		ID:           s.uuid.Generate(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		NationalID:   in.NationalID,
		IDExpiration: in.IDExpiration,
		Password:     string(hashed),
		Status:       entity.UserStatusInactive,
	}

	providerID, err := s.idp.CreateUser(ctx, user, in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create user at identity provider", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}
	user.AuthProviderID = providerID

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "user already exists", "username", in.Username)
			return nil, goerror.NewBusiness("username, email or phone already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserCreateOutput{ID: user.ID}, nil
}
