package db

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/nova/internal/authz/entity"
)

const createResource = `INSERT INTO resources (id, type, description) VALUES ($1, $2, $3)`

func (s *DB) CreateResource(ctx context.Context, resource entity.Resource) (err error) {
	ctx, span := s.startSpan(ctx, "CreateResource")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createResource, resource.ID, resource.Type, resource.Description)

	return s.mapError(err)
}

const getResourceByID = `SELECT id, type, description, created_at, updated_at
FROM resources WHERE id = $1 AND deleted_at IS NULL`

func (s *DB) GetResourceByID(ctx context.Context, id string) (_ *entity.Resource, err error) {
	ctx, span := s.startSpan(ctx, "GetResourceByID")
	defer func() { s.endSpan(span, err) }()

	var resource entity.Resource
	err = s.conn.QueryRow(ctx, getResourceByID, id).Scan(
		&resource.ID, &resource.Type, &resource.Description, &resource.CreatedAt, &resource.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &resource, nil
}

func (s *DB) GetResourceList(ctx context.Context, filter entity.ListFilter) (_ []entity.Resource, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetResourceList")
	defer func() { s.endSpan(span, err) }()

	where := " WHERE deleted_at IS NULL"
	args := []any{}
	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (type ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var count int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM resources"+where, args...).Scan(&count); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, filter.Offset)
	query := fmt.Sprintf(
		"SELECT id, type, description, created_at, updated_at FROM resources%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	resources := make([]entity.Resource, 0, filter.Size)
	for rows.Next() {
		var resource entity.Resource
		if err = rows.Scan(&resource.ID, &resource.Type, &resource.Description, &resource.CreatedAt, &resource.UpdatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		resources = append(resources, resource)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return resources, count, nil
}

const createPermission = `INSERT INTO permissions (id, resource_id, mode, description, is_active)
VALUES ($1, $2, $3, $4, $5)`

func (s *DB) CreatePermission(ctx context.Context, permission entity.Permission) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePermission")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createPermission,
		permission.ID, permission.ResourceID, permission.Mode,
		permission.Description, permission.IsActive,
	)

	return s.mapError(err)
}

const getPermissionByID = `SELECT id, resource_id, mode, description, is_active, created_at, updated_at
FROM permissions WHERE id = $1 AND deleted_at IS NULL`

func (s *DB) GetPermissionByID(ctx context.Context, id string) (_ *entity.Permission, err error) {
	ctx, span := s.startSpan(ctx, "GetPermissionByID")
	defer func() { s.endSpan(span, err) }()

	var permission entity.Permission
	err = s.conn.QueryRow(ctx, getPermissionByID, id).Scan(
		&permission.ID, &permission.ResourceID, &permission.Mode,
		&permission.Description, &permission.IsActive, &permission.CreatedAt, &permission.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &permission, nil
}
