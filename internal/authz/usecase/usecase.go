package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/authz/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
	"github.com/shandysiswandi/nova/internal/pkg/uid"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateRole(ctx context.Context, role entity.Role) error
	GetRoleByID(ctx context.Context, id string) (*entity.Role, error)
	GetRoleList(ctx context.Context, filter entity.ListFilter) ([]entity.Role, int64, error)

	CreateResource(ctx context.Context, resource entity.Resource) error
	GetResourceByID(ctx context.Context, id string) (*entity.Resource, error)
	GetResourceList(ctx context.Context, filter entity.ListFilter) ([]entity.Resource, int64, error)

	CreatePermission(ctx context.Context, permission entity.Permission) error
	GetPermissionByID(ctx context.Context, id string) (*entity.Permission, error)

	CreateUserRole(ctx context.Context, userRole entity.UserRole) error
	CreateRolePermission(ctx context.Context, rolePermission entity.RolePermission) error
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	uuid      uid.StringID
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		uuid:      dep.UUID,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("authz.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) getRole(ctx context.Context, id string) (*entity.Role, error) {
	role, err := s.repoDB.GetRoleByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "role not found", "role_id", id)
		return nil, goerror.NewBusiness("role not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get role by id", "role_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return role, nil
}

func (s *Usecase) getResource(ctx context.Context, id string) (*entity.Resource, error) {
	resource, err := s.repoDB.GetResourceByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "resource not found", "resource_id", id)
		return nil, goerror.NewBusiness("resource not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get resource by id", "resource_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return resource, nil
}

func normalizeListFilter(search string, size, page int32) entity.ListFilter {
	if size <= 0 || size > 100 {
		size = 10 // default limit
	}

	filter := entity.ListFilter{
		Search: search,
		Size:   size,
		Offset: (max(page, 1) - 1) * size,
	}
	if search != "" {
		filter.IsFilterBySearch = true
	}

	return filter
}
