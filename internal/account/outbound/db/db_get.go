package db

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/nova/internal/account/entity"
)

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE`

const getUserByIDIncludeDeleted = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (s *DB) GetUserByID(ctx context.Context, id string, includeDeleted bool) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := getUserByID
	if includeDeleted {
		query = getUserByIDIncludeDeleted
	}

	user, err := scanUser(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND is_deleted = FALSE`

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx, getUserByUsername, username))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

const getUserByPhone = `SELECT ` + userColumns + ` FROM users WHERE phone = $1 AND is_deleted = FALSE`

func (s *DB) GetUserByPhone(ctx context.Context, phone string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByPhone")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx, getUserByPhone, phone))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

// orderableColumns guards ORDER BY against injection since column names
// cannot be bound as parameters.
var orderableColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"username":   "username",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
}

func (s *DB) GetUserList(ctx context.Context, filter entity.UserListFilter) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	where := " WHERE TRUE"
	args := []any{}
	if !filter.IncludeDeleted {
		where += " AND is_deleted = FALSE"
	}
	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(
			" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR username ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			len(args), len(args), len(args), len(args), len(args),
		)
	}

	var count int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&count); err != nil {
		return nil, 0, s.mapError(err)
	}

	orderBy, ok := orderableColumns[filter.OrderBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "DESC"
	if filter.OrderDirection == "asc" {
		direction = "ASC"
	}

	args = append(args, filter.Size, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		userColumns, where, orderBy, direction, len(args)-1, len(args),
	)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, filter.Size)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, count, nil
}

const getOtpRecordByUserID = `SELECT id, user_id, otp_code, otp_code_expiration, sec_token, sec_token_expiration,
	created_at, updated_at
FROM user_otps WHERE user_id = $1`

func (s *DB) GetOtpRecordByUserID(ctx context.Context, userID string) (_ *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetOtpRecordByUserID")
	defer func() { s.endSpan(span, err) }()

	var rec entity.OtpRecord
	err = s.conn.QueryRow(ctx, getOtpRecordByUserID, userID).Scan(
		&rec.ID, &rec.UserID, &rec.OtpCode, &rec.OtpCodeExpiration,
		&rec.SecToken, &rec.SecTokenExpiration, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}
