package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nova/internal/authz/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type ResourceCreateInput struct {
	Type        string `validate:"required,max=100"`
	Description string `validate:"max=255"`
}

type ResourceCreateOutput struct {
	ID string
}

func (s *Usecase) ResourceCreate(ctx context.Context, in ResourceCreateInput) (*ResourceCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ResourceCreate")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	resource := entity.Resource{
		ID:          s.uuid.Generate(),
		Type:        strings.TrimSpace(in.Type),
		Description: in.Description,
	}

	if err := s.repoDB.CreateResource(ctx, resource); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "resource type already exists", "type", resource.Type)
			return nil, goerror.NewBusiness("resource type already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create resource", "type", resource.Type, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ResourceCreateOutput{ID: resource.ID}, nil
}

type ResourceListInput struct {
	Search string
	Size   int32
	Page   int32
}

type ResourceListOutput struct {
	Page      int32
	Size      int32
	Total     int64
	Resources []entity.Resource
}

func (s *Usecase) ResourceList(ctx context.Context, in ResourceListInput) (*ResourceListOutput, error) {
	ctx, span := s.startSpan(ctx, "ResourceList")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	filter := normalizeListFilter(strings.TrimSpace(in.Search), in.Size, in.Page)
	resources, count, err := s.repoDB.GetResourceList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list resources", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ResourceListOutput{
		Page:      max(in.Page, 1),
		Size:      filter.Size,
		Total:     count,
		Resources: resources,
	}, nil
}

type ResourceDetailInput struct {
	ID string `validate:"required,uuid"`
}

type ResourceDetailOutput struct {
	Resource entity.Resource
}

func (s *Usecase) ResourceDetail(ctx context.Context, in ResourceDetailInput) (*ResourceDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "ResourceDetail")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	resource, err := s.getResource(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	return &ResourceDetailOutput{Resource: *resource}, nil
}

type PermissionCreateInput struct {
	ResourceID  string `validate:"required,uuid"`
	Mode        string `validate:"required,oneof=read write delete"`
	Description string `validate:"max=255"`
}

type PermissionCreateOutput struct {
	ID string
}

// PermissionCreate grants one access mode on a resource. The mode is unique
// per resource.
func (s *Usecase) PermissionCreate(ctx context.Context, in PermissionCreateInput) (*PermissionCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "PermissionCreate")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.getResource(ctx, in.ResourceID); err != nil {
		return nil, err
	}

	permission := entity.Permission{
		ID:          s.uuid.Generate(),
		ResourceID:  in.ResourceID,
		Mode:        in.Mode,
		Description: in.Description,
		IsActive:    true,
	}

	if err := s.repoDB.CreatePermission(ctx, permission); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "permission mode already exists on resource", "resource_id", in.ResourceID, "mode", in.Mode)
			return nil, goerror.NewBusiness("permission already exists for resource", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create permission", "resource_id", in.ResourceID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PermissionCreateOutput{ID: permission.ID}, nil
}
