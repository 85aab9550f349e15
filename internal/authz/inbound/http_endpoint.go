package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/nova/internal/authz/entity"
	"github.com/shandysiswandi/nova/internal/authz/usecase"
	"github.com/shandysiswandi/nova/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for roles, resources and permissions.
type HTTPEndpoint struct {
	uc uc
}

func toRoleResponse(r entity.Role, _ int) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResourceResponse(r entity.Resource, _ int) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Type:        r.Type,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RoleCreate registers a new role.
// @Summary Create role
// @Description Creates a new role.
// @Tags Authz, Roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RoleCreateRequest true "Role creation payload"
// @Success 200 {object} router.successResponse{data=RoleCreateResponse} "Role created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Role name already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/roles [post]
func (h *HTTPEndpoint) RoleCreate(r *router.Request) (any, error) {
	var req RoleCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RoleCreate(r.Context(), usecase.RoleCreateInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return nil, err
	}

	return RoleCreateResponse{ID: resp.ID}, nil
}

// RoleList returns a page of roles.
// @Summary List roles
// @Description Returns roles with optional search.
// @Tags Authz, Roles
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or description"
// @Param size query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {object} router.successResponse{data=RolesResponse} "Role page"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/roles [get]
func (h *HTTPEndpoint) RoleList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RoleList(r.Context(), usecase.RoleListInput{
		Search: r.GetQuery("search"),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return RolesResponse{
		Page:  resp.Page,
		Size:  resp.Size,
		Total: resp.Total,
		Roles: lo.Map(resp.Roles, toRoleResponse),
	}, nil
}

// RoleDetail returns a single role by id.
// @Summary Get role
// @Description Returns a role by ID.
// @Tags Authz, Roles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} router.successResponse{data=RoleDetailResponse} "Role detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Role not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/roles/{id} [get]
func (h *HTTPEndpoint) RoleDetail(r *router.Request) (any, error) {
	resp, err := h.uc.RoleDetail(r.Context(), usecase.RoleDetailInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return RoleDetailResponse{Role: toRoleResponse(resp.Role, 0)}, nil
}

// RoleAssign links a role to a user.
// @Summary Assign role to user
// @Description Links an existing role to a user.
// @Tags Authz, Roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RoleAssignRequest true "Role assignment payload"
// @Success 200 {object} router.successResponse{data=RoleAssignResponse} "Role assigned"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Role not found"
// @Failure 409 {object} router.errorResponse "Role already assigned"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/role-assignments [post]
func (h *HTTPEndpoint) RoleAssign(r *router.Request) (any, error) {
	var req RoleAssignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RoleAssign(r.Context(), usecase.RoleAssignInput{
		UserID: req.UserID,
		RoleID: req.RoleID,
	})
	if err != nil {
		return nil, err
	}

	return RoleAssignResponse{ID: resp.ID}, nil
}

// RolePermissionAssign links a permission to a role.
// @Summary Assign permission to role
// @Description Links an existing permission to a role.
// @Tags Authz, Roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RolePermissionAssignRequest true "Role permission payload"
// @Success 200 {object} router.successResponse{data=RolePermissionAssignResponse} "Permission assigned"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Role or permission not found"
// @Failure 409 {object} router.errorResponse "Permission already assigned"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/role-permissions [post]
func (h *HTTPEndpoint) RolePermissionAssign(r *router.Request) (any, error) {
	var req RolePermissionAssignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RolePermissionAssign(r.Context(), usecase.RolePermissionAssignInput{
		RoleID:       req.RoleID,
		PermissionID: req.PermissionID,
	})
	if err != nil {
		return nil, err
	}

	return RolePermissionAssignResponse{ID: resp.ID}, nil
}

// ResourceCreate registers a new resource.
// @Summary Create resource
// @Description Creates a new protected resource.
// @Tags Authz, Resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ResourceCreateRequest true "Resource creation payload"
// @Success 200 {object} router.successResponse{data=ResourceCreateResponse} "Resource created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Resource type already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/resources [post]
func (h *HTTPEndpoint) ResourceCreate(r *router.Request) (any, error) {
	var req ResourceCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResourceCreate(r.Context(), usecase.ResourceCreateInput{
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return ResourceCreateResponse{ID: resp.ID}, nil
}

// ResourceList returns a page of resources.
// @Summary List resources
// @Description Returns resources with optional search.
// @Tags Authz, Resources
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by type or description"
// @Param size query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {object} router.successResponse{data=ResourcesResponse} "Resource page"
// @Failure 400 {object} router.errorResponse "Invalid query parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/resources [get]
func (h *HTTPEndpoint) ResourceList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ResourceList(r.Context(), usecase.ResourceListInput{
		Search: r.GetQuery("search"),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return ResourcesResponse{
		Page:      resp.Page,
		Size:      resp.Size,
		Total:     resp.Total,
		Resources: lo.Map(resp.Resources, toResourceResponse),
	}, nil
}

// ResourceDetail returns a single resource by id.
// @Summary Get resource
// @Description Returns a resource by ID.
// @Tags Authz, Resources
// @Security BearerAuth
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} router.successResponse{data=ResourceDetailResponse} "Resource detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Resource not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/resources/{id} [get]
func (h *HTTPEndpoint) ResourceDetail(r *router.Request) (any, error) {
	resp, err := h.uc.ResourceDetail(r.Context(), usecase.ResourceDetailInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return ResourceDetailResponse{Resource: toResourceResponse(resp.Resource, 0)}, nil
}

// PermissionCreate grants an access mode on a resource.
// @Summary Create permission
// @Description Creates a permission granting one access mode on a resource.
// @Tags Authz, Resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PermissionCreateRequest true "Permission creation payload"
// @Success 200 {object} router.successResponse{data=PermissionCreateResponse} "Permission created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Resource not found"
// @Failure 409 {object} router.errorResponse "Permission already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/resource-permissions [post]
func (h *HTTPEndpoint) PermissionCreate(r *router.Request) (any, error) {
	var req PermissionCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PermissionCreate(r.Context(), usecase.PermissionCreateInput{
		ResourceID:  req.ResourceID,
		Mode:        req.Mode,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return PermissionCreateResponse{ID: resp.ID}, nil
}
