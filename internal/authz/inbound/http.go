package inbound

import (
	"context"

	"github.com/shandysiswandi/nova/internal/authz/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/router"
)

type uc interface {
	RoleCreate(ctx context.Context, in usecase.RoleCreateInput) (*usecase.RoleCreateOutput, error)
	RoleList(ctx context.Context, in usecase.RoleListInput) (*usecase.RoleListOutput, error)
	RoleDetail(ctx context.Context, in usecase.RoleDetailInput) (*usecase.RoleDetailOutput, error)
	RoleAssign(ctx context.Context, in usecase.RoleAssignInput) (*usecase.RoleAssignOutput, error)
	RolePermissionAssign(ctx context.Context, in usecase.RolePermissionAssignInput) (*usecase.RolePermissionAssignOutput, error)

	ResourceCreate(ctx context.Context, in usecase.ResourceCreateInput) (*usecase.ResourceCreateOutput, error)
	ResourceList(ctx context.Context, in usecase.ResourceListInput) (*usecase.ResourceListOutput, error)
	ResourceDetail(ctx context.Context, in usecase.ResourceDetailInput) (*usecase.ResourceDetailOutput, error)
	PermissionCreate(ctx context.Context, in usecase.PermissionCreateInput) (*usecase.PermissionCreateOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Roles (need authenticated)
	r.POST("/api/v1/roles", end.RoleCreate)
	r.GET("/api/v1/roles", end.RoleList)
	r.GET("/api/v1/roles/:id", end.RoleDetail)
	r.POST("/api/v1/role-assignments", end.RoleAssign)
	r.POST("/api/v1/role-permissions", end.RolePermissionAssign)

	// Resources & permissions (need authenticated)
	r.POST("/api/v1/resources", end.ResourceCreate)
	r.GET("/api/v1/resources", end.ResourceList)
	r.GET("/api/v1/resources/:id", end.ResourceDetail)
	r.POST("/api/v1/resource-permissions", end.PermissionCreate)
}
