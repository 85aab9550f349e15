package db

import (
	"context"

	"github.com/shandysiswandi/nova/internal/account/entity"
)

const createUser = `INSERT INTO users (
	id, first_name, last_name, username, email, phone, birth_date, national_id,
	id_expiration, password, is_verified, auth_provider_id, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createUser,
		user.ID, user.FirstName, user.LastName, user.Username, user.Email, user.Phone,
		user.BirthDate, user.NationalID, user.IDExpiration, user.Password,
		user.IsVerified, user.AuthProviderID, user.Status.Ensure().String(),
	)

	return s.mapError(err)
}

// upsertOtpRecord replaces the whole credential state of the row, so a nil
// field always lands as NULL. The unique key on user_id keeps one row per user.
const upsertOtpRecord = `INSERT INTO user_otps (
	id, user_id, otp_code, otp_code_expiration, sec_token, sec_token_expiration
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
	otp_code = EXCLUDED.otp_code,
	otp_code_expiration = EXCLUDED.otp_code_expiration,
	sec_token = EXCLUDED.sec_token,
	sec_token_expiration = EXCLUDED.sec_token_expiration,
	updated_at = NOW()`

func (s *DB) UpsertOtpRecord(ctx context.Context, rec entity.OtpUpsert) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOtpRecord")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, upsertOtpRecord,
		rec.ID, rec.UserID, rec.OtpCode, rec.OtpCodeExpiration,
		rec.SecToken, rec.SecTokenExpiration,
	)

	return s.mapError(err)
}
