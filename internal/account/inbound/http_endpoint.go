package inbound

import (
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/account/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication, OTP and account workflows.
type HTTPEndpoint struct {
	uc uc
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		BirthDate:    u.BirthDate,
		NationalID:   u.NationalID,
		IDExpiration: u.IDExpiration,
		IsVerified:   u.IsVerified,
		Status:       u.Status.String(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// parseDate parses an optional YYYY-MM-DD field, returning nil when absent.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, goerror.NewInvalidFormat(field + " must be formatted as YYYY-MM-DD")
	}

	return &t, nil
}

// Login authenticates a user and returns tokens.
// @Summary Authenticate user
// @Description Validates credentials and returns access/refresh tokens.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// RefreshToken issues a new access token using a refresh token.
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new access/refresh token pair.
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token payload"
// @Success 200 {object} router.successResponse{data=RefreshTokenResponse} "Token refresh result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid refresh token"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	var req RefreshTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{
		Username:     req.Username,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Profile returns the authenticated user's account.
// @Summary Get own profile
// @Description Returns the account of the authenticated user.
// @Tags Account, Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{User: toUserResponse(resp.User)}, nil
}

// OtpSend issues and dispatches a one-time code.
// @Summary Send OTP
// @Description Issues a fresh one-time code and dispatches it over the requested channels.
// @Tags Account, OTP
// @Accept json
// @Produce json
// @Param request body OtpSendRequest true "OTP send payload"
// @Success 200 {object} router.successResponse{data=OtpSendResponse} "OTP dispatched"
// @Failure 400 {object} router.errorResponse "Invalid request body or no channel requested"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "OTP sent too recently"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/otp/send [post]
func (h *HTTPEndpoint) OtpSend(r *router.Request) (any, error) {
	var req OtpSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpSend(r.Context(), usecase.OtpSendInput{
		UserID: req.UserID,
		SMS:    req.SMS,
		Email:  req.Email,
	})
	if err != nil {
		return nil, err
	}

	return OtpSendResponse{UserID: resp.UserID}, nil
}

// OtpConfirm exchanges a one-time code for a security token.
// @Summary Confirm OTP
// @Description Verifies the one-time code and returns a short-lived security token.
// @Tags Account, OTP
// @Accept json
// @Produce json
// @Param request body OtpConfirmRequest true "OTP confirm payload"
// @Success 200 {object} router.successResponse{data=OtpConfirmResponse} "Security token"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "OTP record not found"
// @Failure 422 {object} router.errorResponse "Invalid or expired code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/otp/confirm [post]
func (h *HTTPEndpoint) OtpConfirm(r *router.Request) (any, error) {
	var req OtpConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpConfirm(r.Context(), usecase.OtpConfirmInput{
		UserID:  req.UserID,
		OtpCode: req.OtpCode,
	})
	if err != nil {
		return nil, err
	}

	return OtpConfirmResponse{
		UserID:   resp.UserID,
		SecToken: resp.SecToken,
	}, nil
}

// PhoneVerify starts a phone change by sending a code to the new number.
// @Summary Verify new phone number
// @Description Sends a one-time code to the new phone number and notifies the current email.
// @Tags Account, Phone
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PhoneVerifyRequest true "Phone verify payload"
// @Success 200 {object} router.successResponse{data=PhoneVerifyResponse} "Code dispatched"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Phone number already in use"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/phone/verify [post]
func (h *HTTPEndpoint) PhoneVerify(r *router.Request) (any, error) {
	var req PhoneVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PhoneVerify(r.Context(), usecase.PhoneVerifyInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return PhoneVerifyResponse{UserID: resp.UserID}, nil
}

// PhoneChange commits a verified phone number.
// @Summary Change phone number
// @Description Updates the phone number after OTP verification, requires a valid security token.
// @Tags Account, Phone
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PhoneChangeRequest true "Phone change payload"
// @Success 200 {object} router.successResponse{data=PhoneChangeResponse} "Phone updated"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Invalid or expired security token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/phone [put]
func (h *HTTPEndpoint) PhoneChange(r *router.Request) (any, error) {
	var req PhoneChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PhoneChange(r.Context(), usecase.PhoneChangeInput{
		Phone:    req.Phone,
		SecToken: req.SecToken,
	})
	if err != nil {
		return nil, err
	}

	return PhoneChangeResponse{
		UserID: resp.UserID,
		Phone:  resp.Phone,
	}, nil
}

// PasswordChange replaces the password of the authenticated user.
// @Summary Change password
// @Description Updates the password after OTP verification, requires the old password and a valid security token.
// @Tags Account, Password
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PasswordChangeRequest true "Password change payload"
// @Success 200 {object} router.successResponse{data=PasswordChangeResponse} "Password updated"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Invalid or expired security token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/password [put]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		SecToken:    req.SecToken,
	}); err != nil {
		return nil, err
	}

	return PasswordChangeResponse{}, nil
}

// PasswordReset sets a new password for a user who cannot log in.
// @Summary Reset password
// @Description Sets a new password after OTP verification, requires a valid security token.
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Password reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Password reset"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Invalid or expired security token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/account/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		UserID:      req.UserID,
		NewPassword: req.NewPassword,
		SecToken:    req.SecToken,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// UserList returns a page of users.
// @Summary List users
// @Description Returns users with optional search and sorting.
// @Tags Account, Management Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, username, email or phone"
// @Param include_deleted query bool false "Include soft-deleted users"
// @Param sort_by query string false "Sort by column"
// @Param sort_order query string false "Sort order: asc, desc"
// @Param size query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {object} router.successResponse{data=UsersResponse} "User page"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search:         r.GetQuery("search"),
		IncludeDeleted: r.GetQuery("include_deleted") == "true",
		SortBy:         r.GetQuery("sort_by"),
		SortOrder:      r.GetQuery("sort_order"),
		Size:           size,
		Page:           page,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, item := range resp.Users {
		users = append(users, toUserResponse(item))
	}

	return UsersResponse{
		Page:  resp.Page,
		Size:  resp.Size,
		Total: resp.Total,
		Users: users,
	}, nil
}

// UserDetail returns a single user by id.
// @Summary Get user
// @Description Returns a user by ID.
// @Tags Account, Management Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} router.successResponse{data=UserDetailResponse} "User detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/{id} [get]
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{User: toUserResponse(resp.User)}, nil
}

// UserCreate registers a new account.
// @Summary Create user
// @Description Registers a new account locally and at the identity provider.
// @Tags Account, Management Users
// @Accept json
// @Produce json
// @Param request body UserCreateRequest true "User creation payload"
// @Success 200 {object} router.successResponse{data=UserCreateResponse} "User created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Username, email or phone already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users [post]
func (h *HTTPEndpoint) UserCreate(r *router.Request) (any, error) {
	var req UserCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}

	idExpiration, err := parseDate("id_expiration", req.IDExpiration)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserCreate(r.Context(), usecase.UserCreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		NationalID:   req.NationalID,
		BirthDate:    birthDate,
		IDExpiration: idExpiration,
	})
	if err != nil {
		return nil, err
	}

	return UserCreateResponse{ID: resp.ID}, nil
}

// UserUpdate patches a user.
// @Summary Update user
// @Description Patches the provided fields of a user.
// @Tags Account, Management Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UserUpdateRequest true "User update payload"
// @Success 200 {object} router.successResponse{data=UserDetailResponse} "Updated user"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Email or phone already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/{id} [put]
func (h *HTTPEndpoint) UserUpdate(r *router.Request) (any, error) {
	var req UserUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	var idExpiration *time.Time
	if req.IDExpiration != nil {
		parsed, err := parseDate("id_expiration", *req.IDExpiration)
		if err != nil {
			return nil, err
		}
		idExpiration = parsed
	}

	resp, err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID:           r.GetParam("id"),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
		IDExpiration: idExpiration,
		Status:       req.Status,
		IsVerified:   req.IsVerified,
	})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{User: toUserResponse(resp.User)}, nil
}

// UserDelete soft-deletes a user.
// @Summary Delete user
// @Description Soft-deletes a user and removes it from the identity provider.
// @Tags Account, Management Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/{id} [delete]
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	if _, err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return nil, nil
}
