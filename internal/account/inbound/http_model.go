package inbound

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type OtpSendRequest struct {
	UserID string `json:"user_id"`
	SMS    bool   `json:"sms"`
	Email  bool   `json:"email"`
}

type OtpSendResponse struct {
	UserID string `json:"user_id"`
}

func (OtpSendResponse) Message() string {
	return "OTP sent, it expires shortly."
}

type OtpConfirmRequest struct {
	UserID  string `json:"user_id"`
	OtpCode string `json:"otp_code"`
}

type OtpConfirmResponse struct {
	UserID   string `json:"user_id"`
	SecToken string `json:"sec_token"`
}

func (OtpConfirmResponse) Message() string {
	return "OTP confirmed."
}

type PhoneVerifyRequest struct {
	Phone string `json:"phone"`
}

type PhoneVerifyResponse struct {
	UserID string `json:"user_id"`
}

func (PhoneVerifyResponse) Message() string {
	return "Verification code sent to the new phone number."
}

type PhoneChangeRequest struct {
	Phone    string `json:"phone"`
	SecToken string `json:"sec_token"`
}

type PhoneChangeResponse struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
}

func (PhoneChangeResponse) Message() string {
	return "Phone number updated."
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	SecToken    string `json:"sec_token"`
}

type PasswordChangeResponse struct{}

func (PasswordChangeResponse) Message() string {
	return "Password updated."
}

type PasswordResetRequest struct {
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
	SecToken    string `json:"sec_token"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Password has been reset."
}

type UserCreateRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	NationalID   string `json:"national_id"`
	BirthDate    string `json:"birth_date"`    // YYYY-MM-DD
	IDExpiration string `json:"id_expiration"` // YYYY-MM-DD
}

type UserCreateResponse struct {
	ID string `json:"id"`
}

func (UserCreateResponse) Message() string {
	return "Account created. Verify your phone number to activate it."
}

type UserUpdateRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	NationalID   *string `json:"national_id"`
	IDExpiration *string `json:"id_expiration"` // YYYY-MM-DD
	Status       *string `json:"status"`
	IsVerified   *bool   `json:"is_verified"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	NationalID   string     `json:"national_id,omitempty"`
	IDExpiration *time.Time `json:"id_expiration,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UserDetailResponse struct {
	User UserResponse `json:"user"`
}

type UsersResponse struct {
	Page  int32          `json:"page"`
	Size  int32          `json:"size"`
	Total int64          `json:"total"`
	Users []UserResponse `json:"users"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}
