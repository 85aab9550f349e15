package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

func (s *DB) PatchUser(ctx context.Context, in entity.PatchUser) (err error) {
	ctx, span := s.startSpan(ctx, "PatchUser")
	defer func() { s.endSpan(span, err) }()

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.FirstName != nil {
		add("first_name", *in.FirstName)
	}
	if in.LastName != nil {
		add("last_name", *in.LastName)
	}
	if in.Email != nil {
		add("email", *in.Email)
	}
	if in.Phone != nil {
		add("phone", *in.Phone)
	}
	if in.NationalID != nil {
		add("national_id", *in.NationalID)
	}
	if in.IDExpiration != nil {
		add("id_expiration", *in.IDExpiration)
	}
	if in.Status != nil {
		add("status", in.Status.Ensure().String())
	}
	if in.IsVerified != nil {
		add("is_verified", *in.IsVerified)
	}

	if len(args) == 0 {
		return nil
	}

	args = append(args, in.ID)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d AND is_deleted = FALSE",
		strings.Join(sets, ", "), len(args),
	)

	tag, err := s.conn.Exec(ctx, query, args...)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const updateUserPhone = `UPDATE users
SET phone = $2, updated_at = NOW()
WHERE id = $1 AND is_deleted = FALSE`

func (s *DB) UpdateUserPhone(ctx context.Context, id, phone string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPhone")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateUserPhone, id, phone)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const updateUserPassword = `UPDATE users
SET password = $2, updated_at = NOW()
WHERE id = $1 AND is_deleted = FALSE`

func (s *DB) UpdateUserPassword(ctx context.Context, id, hashed string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateUserPassword, id, hashed)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const markUserDeleted = `UPDATE users
SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND is_deleted = FALSE`

func (s *DB) MarkUserDeleted(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserDeleted")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markUserDeleted, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
