package entity

import "time"

// OtpRecord is the single live OTP/security-token row for a user.
//
// At most one of the two credential pairs is populated at a time: issuing a
// code clears the token, confirming a code mints the token and clears the
// code, and rotation clears both.
type OtpRecord struct {
	ID                 string
	UserID             string
	OtpCode            *string
	OtpCodeExpiration  *time.Time
	SecToken           *string
	SecTokenExpiration *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OtpUpsert carries the replacement state for a user's OTP row. Nil fields
// are written as NULL, not skipped.
type OtpUpsert struct {
	ID                 string
	UserID             string
	OtpCode            *string
	OtpCodeExpiration  *time.Time
	SecToken           *string
	SecTokenExpiration *time.Time
}
