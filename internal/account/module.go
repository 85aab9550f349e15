package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/nova/internal/account/inbound"
	"github.com/shandysiswandi/nova/internal/account/outbound/db"
	"github.com/shandysiswandi/nova/internal/account/outbound/idp"
	"github.com/shandysiswandi/nova/internal/account/outbound/mq"
	"github.com/shandysiswandi/nova/internal/account/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/clock"
	"github.com/shandysiswandi/nova/internal/pkg/config"
	"github.com/shandysiswandi/nova/internal/pkg/goroutine"
	"github.com/shandysiswandi/nova/internal/pkg/hash"
	"github.com/shandysiswandi/nova/internal/pkg/idempotency"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
	"github.com/shandysiswandi/nova/internal/pkg/messaging"
	"github.com/shandysiswandi/nova/internal/pkg/otp"
	"github.com/shandysiswandi/nova/internal/pkg/router"
	"github.com/shandysiswandi/nova/internal/pkg/uid"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	OTP         otp.Generator              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	keycloak := idp.NewKeycloak(dep.Config, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		IDP:           keycloak,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		OTP:           dep.OTP,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
