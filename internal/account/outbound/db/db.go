package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

// - 23505 unique violation → goerror.ErrConflict
// - everything else passes through untouched
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const userColumns = `id, first_name, last_name, username, email, phone, birth_date, national_id,
	id_expiration, password, is_verified, auth_provider_id, status, is_deleted,
	created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var status string
	if err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.Phone, &u.BirthDate,
		&u.NationalID, &u.IDExpiration, &u.Password, &u.IsVerified, &u.AuthProviderID,
		&status, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	); err != nil {
		return nil, err
	}
	u.Status = entity.UserStatus(status).Ensure()

	return &u, nil
}
