package authz

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/nova/internal/authz/inbound"
	"github.com/shandysiswandi/nova/internal/authz/outbound/db"
	"github.com/shandysiswandi/nova/internal/authz/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/router"
	"github.com/shandysiswandi/nova/internal/pkg/uid"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		Validator:  dep.Validator,
		UUID:       dep.UUID,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
