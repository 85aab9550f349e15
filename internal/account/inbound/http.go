package inbound

import (
	"context"

	"github.com/shandysiswandi/nova/internal/account/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)

	OtpSend(ctx context.Context, in usecase.OtpSendInput) (*usecase.OtpSendOutput, error)
	OtpConfirm(ctx context.Context, in usecase.OtpConfirmInput) (*usecase.OtpConfirmOutput, error)

	PhoneVerify(ctx context.Context, in usecase.PhoneVerifyInput) (*usecase.PhoneVerifyOutput, error)
	PhoneChange(ctx context.Context, in usecase.PhoneChangeInput) (*usecase.PhoneChangeOutput, error)
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) (*usecase.PasswordChangeOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) (*usecase.PasswordResetOutput, error)

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserCreate(ctx context.Context, in usecase.UserCreateInput) (*usecase.UserCreateOutput, error)
	UserUpdate(ctx context.Context, in usecase.UserUpdateInput) (*usecase.UserUpdateOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) (*usecase.UserDeleteOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/refresh", end.RefreshToken)
	r.GET("/api/v1/auth/profile", end.Profile) // need authenticated

	// OTP lifecycle
	r.POST("/api/v1/account/otp/send", end.OtpSend)
	r.POST("/api/v1/account/otp/confirm", end.OtpConfirm)

	// Sensitive account mutations (need authenticated, except password reset)
	r.POST("/api/v1/account/phone/verify", end.PhoneVerify)
	r.PUT("/api/v1/account/phone", end.PhoneChange)
	r.PUT("/api/v1/account/password", end.PasswordChange)
	r.POST("/api/v1/account/password/reset", end.PasswordReset)

	// User directory (need authenticated, except create)
	r.GET("/api/v1/users", end.UserList)
	r.GET("/api/v1/users/:id", end.UserDetail)
	r.POST("/api/v1/users", end.UserCreate)
	r.PUT("/api/v1/users/:id", end.UserUpdate)
	r.DELETE("/api/v1/users/:id", end.UserDelete)
}
