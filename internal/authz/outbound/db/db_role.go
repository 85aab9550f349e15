package db

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/nova/internal/authz/entity"
)

const createRole = `INSERT INTO roles (id, name, description, is_active) VALUES ($1, $2, $3, $4)`

func (s *DB) CreateRole(ctx context.Context, role entity.Role) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRole")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createRole, role.ID, role.Name, role.Description, role.IsActive)

	return s.mapError(err)
}

const getRoleByID = `SELECT id, name, description, is_active, created_at, updated_at
FROM roles WHERE id = $1 AND deleted_at IS NULL`

func (s *DB) GetRoleByID(ctx context.Context, id string) (_ *entity.Role, err error) {
	ctx, span := s.startSpan(ctx, "GetRoleByID")
	defer func() { s.endSpan(span, err) }()

	var role entity.Role
	err = s.conn.QueryRow(ctx, getRoleByID, id).Scan(
		&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &role, nil
}

func (s *DB) GetRoleList(ctx context.Context, filter entity.ListFilter) (_ []entity.Role, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetRoleList")
	defer func() { s.endSpan(span, err) }()

	where := " WHERE deleted_at IS NULL"
	args := []any{}
	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var count int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM roles"+where, args...).Scan(&count); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, filter.Offset)
	query := fmt.Sprintf(
		"SELECT id, name, description, is_active, created_at, updated_at FROM roles%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	roles := make([]entity.Role, 0, filter.Size)
	for rows.Next() {
		var role entity.Role
		if err = rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return roles, count, nil
}

const createUserRole = `INSERT INTO user_roles (id, user_id, role_id) VALUES ($1, $2, $3)`

func (s *DB) CreateUserRole(ctx context.Context, userRole entity.UserRole) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserRole")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createUserRole, userRole.ID, userRole.UserID, userRole.RoleID)

	return s.mapError(err)
}

const createRolePermission = `INSERT INTO role_permissions (id, role_id, permission_id) VALUES ($1, $2, $3)`

func (s *DB) CreateRolePermission(ctx context.Context, rolePermission entity.RolePermission) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRolePermission")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createRolePermission,
		rolePermission.ID, rolePermission.RoleID, rolePermission.PermissionID,
	)

	return s.mapError(err)
}
