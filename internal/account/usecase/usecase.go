package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/clock"
	"github.com/shandysiswandi/nova/internal/pkg/config"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/goroutine"
	"github.com/shandysiswandi/nova/internal/pkg/hash"
	"github.com/shandysiswandi/nova/internal/pkg/idempotency"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
	"github.com/shandysiswandi/nova/internal/pkg/otp"
	"github.com/shandysiswandi/nova/internal/pkg/uid"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const otpCodeLength = 6

const secTokenByteLength = 16

type repoDB interface {
	GetUserByID(ctx context.Context, id string, includeDeleted bool) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetUserList(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)

	CreateUser(ctx context.Context, user entity.User) error
	PatchUser(ctx context.Context, in entity.PatchUser) error
	UpdateUserPhone(ctx context.Context, id, phone string) error
	UpdateUserPassword(ctx context.Context, id, hashed string) error
	MarkUserDeleted(ctx context.Context, id string) error

	GetOtpRecordByUserID(ctx context.Context, userID string) (*entity.OtpRecord, error)
	UpsertOtpRecord(ctx context.Context, rec entity.OtpUpsert) error
}

type repoMessaging interface {
	PublishEmailOTP(ctx context.Context, recipients []string, code string) error
	PublishSMSOTP(ctx context.Context, recipients []string, code string) error
}

type identityProvider interface {
	GetToken(ctx context.Context, username, password string) (*entity.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	CreateUser(ctx context.Context, user entity.User, password string) (string, error)
	UpdateUser(ctx context.Context, user entity.User) error
	DeleteUser(ctx context.Context, username string) error
	ChangePassword(ctx context.Context, username, newPassword string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idp           identityProvider
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	otp           otp.Generator
	uuid          uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	IDP           identityProvider
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	OTP           otp.Generator
	UUID          uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idp:           dep.IDP,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		otp:           dep.OTP,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) getUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.repoDB.GetUserByID(ctx, id, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", id)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

// issueOTP writes a fresh code for the user and burns any previous code or
// security token. The returned code still has to be dispatched by the caller.
func (s *Usecase) issueOTP(ctx context.Context, userID string) (string, error) {
	code, err := s.otp.Code(otpCodeLength)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", userID, "error", err)
		return "", goerror.NewServer(err)
	}

	exp := s.clock.Now().Add(s.cfg.GetMinute("modules.account.otp_ttl_minutes"))
	if err := s.repoDB.UpsertOtpRecord(ctx, entity.OtpUpsert{
		ID:                 s.uuid.Generate(),
		UserID:             userID,
		OtpCode:            &code,
		OtpCodeExpiration:  &exp,
		SecToken:           nil,
		SecTokenExpiration: nil,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp record", "user_id", userID, "error", err)
		return "", goerror.NewServer(err)
	}

	return code, nil
}

// requireValidSecurityToken gates the sensitive mutations. A missing row, a
// mismatched or empty stored token, and an expired token each fail closed.
func (s *Usecase) requireValidSecurityToken(ctx context.Context, userID, token string) error {
	rec, err := s.repoDB.GetOtpRecordByUserID(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record not found", "user_id", userID)
		return goerror.NewBusiness("otp record not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp record", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if rec.SecToken == nil || *rec.SecToken == "" || *rec.SecToken != token {
		slog.WarnContext(ctx, "security token mismatch", "user_id", userID)
		return goerror.NewBusiness("invalid security token", goerror.CodeInvalidInput)
	}

	if rec.SecTokenExpiration == nil || s.clock.Now().After(*rec.SecTokenExpiration) {
		slog.WarnContext(ctx, "security token expired", "user_id", userID)
		return goerror.NewBusiness("security token has expired", goerror.CodeInvalidInput)
	}

	return nil
}

// rotateOtpRecord burns the user's code and token after a completed sensitive
// operation so the token cannot be replayed.
func (s *Usecase) rotateOtpRecord(ctx context.Context, userID string) error {
	if err := s.repoDB.UpsertOtpRecord(ctx, entity.OtpUpsert{
		ID:     s.uuid.Generate(),
		UserID: userID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate otp record", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// dispatchOTP publishes the code to the notification broker. Delivery is fire
// and forget: failures are logged and never surface to the caller.
func (s *Usecase) dispatchOTP(ctx context.Context, code string, emails, phones []string) {
	if len(emails) > 0 {
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.repoMessaging.PublishEmailOTP(ctx, emails, code); err != nil {
				slog.ErrorContext(ctx, "failed to publish email otp notification", "error", err)
			}
			return nil
		})
	}

	if len(phones) > 0 {
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.repoMessaging.PublishSMSOTP(ctx, phones, code); err != nil {
				slog.ErrorContext(ctx, "failed to publish sms otp notification", "error", err)
			}
			return nil
		})
	}
}

// isMasterOTPCode reports whether code is on the configured allow list.
//
// The list must stay empty in production; it exists so staging environments
// can run end-to-end tests without an SMS gateway.
func (s *Usecase) isMasterOTPCode(ctx context.Context, userID, code string) bool {
	for _, master := range s.cfg.GetArray("modules.account.master_otp_codes") {
		if master != "" && master == code {
			slog.WarnContext(ctx, "master otp code used to bypass verification", "user_id", userID)
			return true
		}
	}

	return false
}
