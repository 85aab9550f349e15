package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nova/internal/authz/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type RoleCreateInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=255"`
	IsActive    bool
}

type RoleCreateOutput struct {
	ID string
}

func (s *Usecase) RoleCreate(ctx context.Context, in RoleCreateInput) (*RoleCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "RoleCreate")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := entity.Role{
		ID:          s.uuid.Generate(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	if err := s.repoDB.CreateRole(ctx, role); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "role name already exists", "name", role.Name)
			return nil, goerror.NewBusiness("role name already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create role", "name", role.Name, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RoleCreateOutput{ID: role.ID}, nil
}

type RoleListInput struct {
	Search string
	Size   int32
	Page   int32
}

type RoleListOutput struct {
	Page  int32
	Size  int32
	Total int64
	Roles []entity.Role
}

func (s *Usecase) RoleList(ctx context.Context, in RoleListInput) (*RoleListOutput, error) {
	ctx, span := s.startSpan(ctx, "RoleList")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	filter := normalizeListFilter(strings.TrimSpace(in.Search), in.Size, in.Page)
	roles, count, err := s.repoDB.GetRoleList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list roles", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RoleListOutput{
		Page:  max(in.Page, 1),
		Size:  filter.Size,
		Total: count,
		Roles: roles,
	}, nil
}

type RoleDetailInput struct {
	ID string `validate:"required,uuid"`
}

type RoleDetailOutput struct {
	Role entity.Role
}

func (s *Usecase) RoleDetail(ctx context.Context, in RoleDetailInput) (*RoleDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "RoleDetail")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role, err := s.getRole(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	return &RoleDetailOutput{Role: *role}, nil
}

type RoleAssignInput struct {
	UserID string `validate:"required,uuid"`
	RoleID string `validate:"required,uuid"`
}

type RoleAssignOutput struct {
	ID string
}

// RoleAssign links a role to a user.
func (s *Usecase) RoleAssign(ctx context.Context, in RoleAssignInput) (*RoleAssignOutput, error) {
	ctx, span := s.startSpan(ctx, "RoleAssign")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.getRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	userRole := entity.UserRole{
		ID:     s.uuid.Generate(),
		UserID: in.UserID,
		RoleID: in.RoleID,
	}

	if err := s.repoDB.CreateUserRole(ctx, userRole); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "role already assigned to user", "user_id", in.UserID, "role_id", in.RoleID)
			return nil, goerror.NewBusiness("role already assigned to user", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user role", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RoleAssignOutput{ID: userRole.ID}, nil
}

type RolePermissionAssignInput struct {
	RoleID       string `validate:"required,uuid"`
	PermissionID string `validate:"required,uuid"`
}

type RolePermissionAssignOutput struct {
	ID string
}

// RolePermissionAssign links a permission to a role.
func (s *Usecase) RolePermissionAssign(ctx context.Context, in RolePermissionAssignInput) (*RolePermissionAssignOutput, error) {
	ctx, span := s.startSpan(ctx, "RolePermissionAssign")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.getRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	if _, err := s.repoDB.GetPermissionByID(ctx, in.PermissionID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "permission not found", "permission_id", in.PermissionID)
			return nil, goerror.NewBusiness("permission not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get permission by id", "permission_id", in.PermissionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	rolePermission := entity.RolePermission{
		ID:           s.uuid.Generate(),
		RoleID:       in.RoleID,
		PermissionID: in.PermissionID,
	}

	if err := s.repoDB.CreateRolePermission(ctx, rolePermission); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "permission already assigned to role", "role_id", in.RoleID, "permission_id", in.PermissionID)
			return nil, goerror.NewBusiness("permission already assigned to role", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create role permission", "role_id", in.RoleID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RolePermissionAssignOutput{ID: rolePermission.ID}, nil
}
