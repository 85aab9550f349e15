package inbound

import "time"

type RoleCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type RoleCreateResponse struct {
	ID string `json:"id"`
}

func (RoleCreateResponse) Message() string {
	return "Role created."
}

type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoleDetailResponse struct {
	Role RoleResponse `json:"role"`
}

type RolesResponse struct {
	Page  int32          `json:"page"`
	Size  int32          `json:"size"`
	Total int64          `json:"total"`
	Roles []RoleResponse `json:"roles"`
}

type RoleAssignRequest struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

type RoleAssignResponse struct {
	ID string `json:"id"`
}

func (RoleAssignResponse) Message() string {
	return "Role assigned to user."
}

type RolePermissionAssignRequest struct {
	RoleID       string `json:"role_id"`
	PermissionID string `json:"permission_id"`
}

type RolePermissionAssignResponse struct {
	ID string `json:"id"`
}

func (RolePermissionAssignResponse) Message() string {
	return "Permission assigned to role."
}

type ResourceCreateRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type ResourceCreateResponse struct {
	ID string `json:"id"`
}

func (ResourceCreateResponse) Message() string {
	return "Resource created."
}

type ResourceResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ResourceDetailResponse struct {
	Resource ResourceResponse `json:"resource"`
}

type ResourcesResponse struct {
	Page      int32              `json:"page"`
	Size      int32              `json:"size"`
	Total     int64              `json:"total"`
	Resources []ResourceResponse `json:"resources"`
}

type PermissionCreateRequest struct {
	ResourceID  string `json:"resource_id"`
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

type PermissionCreateResponse struct {
	ID string `json:"id"`
}

func (PermissionCreateResponse) Message() string {
	return "Permission created."
}
