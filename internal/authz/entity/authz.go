package entity

import "time"

// Role groups permissions for assignment to users.
type Role struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource is a protected surface, identified by its unique type string.
type Resource struct {
	ID          string
	Type        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission grants one access mode on a resource. The (resource_id, mode)
// pair is unique.
type Permission struct {
	ID          string
	ResourceID  string
	Mode        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRole links a user to a role.
type UserRole struct {
	ID        string
	UserID    string
	RoleID    string
	CreatedAt time.Time
}

// RolePermission links a role to a permission.
type RolePermission struct {
	ID           string
	RoleID       string
	PermissionID string
	CreatedAt    time.Time
}

type ListFilter struct {
	IsFilterBySearch bool
	Search           string
	Size             int32
	Offset           int32
}
