package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/nova/internal/authz/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
)

const (
	testRoleID       = "9e4f3e9a-02c9-4c61-8a36-8de0f42cf9a1"
	testResourceID   = "12c4a0ea-7b7e-4a70-9f34-6a1d4a6a3f55"
	testPermissionID = "c7e2f1d0-5c44-4f58-8d5b-20c5a0f5e7b3"
	testUserID       = "0b26eff1-8c86-4bb1-bb66-3bb8e1d33911"
)

type fakeRepoDB struct {
	createRoleFn           func(ctx context.Context, role entity.Role) error
	getRoleByIDFn          func(ctx context.Context, id string) (*entity.Role, error)
	getRoleListFn          func(ctx context.Context, filter entity.ListFilter) ([]entity.Role, int64, error)
	createResourceFn       func(ctx context.Context, resource entity.Resource) error
	getResourceByIDFn      func(ctx context.Context, id string) (*entity.Resource, error)
	getResourceListFn      func(ctx context.Context, filter entity.ListFilter) ([]entity.Resource, int64, error)
	createPermissionFn     func(ctx context.Context, permission entity.Permission) error
	getPermissionByIDFn    func(ctx context.Context, id string) (*entity.Permission, error)
	createUserRoleFn       func(ctx context.Context, userRole entity.UserRole) error
	createRolePermissionFn func(ctx context.Context, rolePermission entity.RolePermission) error
}

func (f *fakeRepoDB) CreateRole(ctx context.Context, role entity.Role) error {
	if f.createRoleFn == nil {
		panic("unexpected call to CreateRole")
	}
	return f.createRoleFn(ctx, role)
}

func (f *fakeRepoDB) GetRoleByID(ctx context.Context, id string) (*entity.Role, error) {
	if f.getRoleByIDFn == nil {
		panic("unexpected call to GetRoleByID")
	}
	return f.getRoleByIDFn(ctx, id)
}

func (f *fakeRepoDB) GetRoleList(ctx context.Context, filter entity.ListFilter) ([]entity.Role, int64, error) {
	if f.getRoleListFn == nil {
		panic("unexpected call to GetRoleList")
	}
	return f.getRoleListFn(ctx, filter)
}

func (f *fakeRepoDB) CreateResource(ctx context.Context, resource entity.Resource) error {
	if f.createResourceFn == nil {
		panic("unexpected call to CreateResource")
	}
	return f.createResourceFn(ctx, resource)
}

func (f *fakeRepoDB) GetResourceByID(ctx context.Context, id string) (*entity.Resource, error) {
	if f.getResourceByIDFn == nil {
		panic("unexpected call to GetResourceByID")
	}
	return f.getResourceByIDFn(ctx, id)
}

func (f *fakeRepoDB) GetResourceList(ctx context.Context, filter entity.ListFilter) ([]entity.Resource, int64, error) {
	if f.getResourceListFn == nil {
		panic("unexpected call to GetResourceList")
	}
	return f.getResourceListFn(ctx, filter)
}

func (f *fakeRepoDB) CreatePermission(ctx context.Context, permission entity.Permission) error {
	if f.createPermissionFn == nil {
		panic("unexpected call to CreatePermission")
	}
	return f.createPermissionFn(ctx, permission)
}

func (f *fakeRepoDB) GetPermissionByID(ctx context.Context, id string) (*entity.Permission, error) {
	if f.getPermissionByIDFn == nil {
		panic("unexpected call to GetPermissionByID")
	}
	return f.getPermissionByIDFn(ctx, id)
}

func (f *fakeRepoDB) CreateUserRole(ctx context.Context, userRole entity.UserRole) error {
	if f.createUserRoleFn == nil {
		panic("unexpected call to CreateUserRole")
	}
	return f.createUserRoleFn(ctx, userRole)
}

func (f *fakeRepoDB) CreateRolePermission(ctx context.Context, rolePermission entity.RolePermission) error {
	if f.createRolePermissionFn == nil {
		panic("unexpected call to CreateRolePermission")
	}
	return f.createRolePermissionFn(ctx, rolePermission)
}

type fakeStringID struct{ id string }

func (f *fakeStringID) Generate() string { return f.id }

func newTestUsecase(t *testing.T, repo *fakeRepoDB) *Usecase {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() returned error: %v", err)
	}

	return New(Dependency{
		RepoDB:     repo,
		Validator:  v10,
		UUID:       &fakeStringID{id: "generated-id"},
		Instrument: instrument.NewNoop(),
	})
}

func authContext(userID string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Username: "ada@example.com"})
}

func wantGoError(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("error = nil, want %q with code %s", msg, code)
	}

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if ge.Msg() != msg {
		t.Fatalf("error message = %q, want %q", ge.Msg(), msg)
	}
	if ge.Code() != code {
		t.Fatalf("error code = %s, want %s", ge.Code(), code)
	}
}

func TestRoleCreate(t *testing.T) {
	repo := &fakeRepoDB{}
	var created entity.Role
	repo.createRoleFn = func(_ context.Context, role entity.Role) error {
		created = role
		return nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.RoleCreate(authContext(testUserID), RoleCreateInput{
		Name:        " admin ",
		Description: "full access",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("RoleCreate() returned error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("RoleCreate() id = %q, want generated-id", out.ID)
	}
	if created.Name != "admin" {
		t.Fatalf("created role name = %q, want trimmed admin", created.Name)
	}
	if !created.IsActive {
		t.Fatal("created role must keep the requested active flag")
	}
}

func TestRoleCreateDuplicateName(t *testing.T) {
	repo := &fakeRepoDB{
		createRoleFn: func(context.Context, entity.Role) error {
			return goerror.ErrConflict
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.RoleCreate(authContext(testUserID), RoleCreateInput{Name: "admin"})
	wantGoError(t, err, "role name already exists", goerror.CodeConflict)
}

func TestRoleCreateUnauthenticated(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepoDB{})

	_, err := uc.RoleCreate(context.Background(), RoleCreateInput{Name: "admin"})
	wantGoError(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestRoleList(t *testing.T) {
	repo := &fakeRepoDB{}
	var gotFilter entity.ListFilter
	repo.getRoleListFn = func(_ context.Context, filter entity.ListFilter) ([]entity.Role, int64, error) {
		gotFilter = filter
		return []entity.Role{{ID: testRoleID, Name: "admin"}}, 7, nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.RoleList(authContext(testUserID), RoleListInput{Search: "adm", Size: 5, Page: 2})
	if err != nil {
		t.Fatalf("RoleList() returned error: %v", err)
	}
	if !gotFilter.IsFilterBySearch || gotFilter.Search != "adm" {
		t.Fatalf("filter = %+v, want search enabled for adm", gotFilter)
	}
	if gotFilter.Size != 5 || gotFilter.Offset != 5 {
		t.Fatalf("filter size/offset = %d/%d, want 5/5", gotFilter.Size, gotFilter.Offset)
	}
	if out.Total != 7 || len(out.Roles) != 1 {
		t.Fatalf("RoleList() total = %d roles = %d, want 7/1", out.Total, len(out.Roles))
	}
}

func TestRoleDetailNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(context.Context, string) (*entity.Role, error) {
			return nil, goerror.ErrNotFound
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.RoleDetail(authContext(testUserID), RoleDetailInput{ID: testRoleID})
	wantGoError(t, err, "role not found", goerror.CodeNotFound)
}

func TestRoleAssign(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(_ context.Context, id string) (*entity.Role, error) {
			return &entity.Role{ID: id, Name: "admin"}, nil
		},
	}
	var created entity.UserRole
	repo.createUserRoleFn = func(_ context.Context, userRole entity.UserRole) error {
		created = userRole
		return nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.RoleAssign(authContext(testUserID), RoleAssignInput{
		UserID: testUserID,
		RoleID: testRoleID,
	})
	if err != nil {
		t.Fatalf("RoleAssign() returned error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("RoleAssign() id = %q, want generated-id", out.ID)
	}
	if created.UserID != testUserID || created.RoleID != testRoleID {
		t.Fatalf("created user role = %+v, want user %s role %s", created, testUserID, testRoleID)
	}
}

func TestRoleAssignAlreadyAssigned(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(_ context.Context, id string) (*entity.Role, error) {
			return &entity.Role{ID: id}, nil
		},
		createUserRoleFn: func(context.Context, entity.UserRole) error {
			return goerror.ErrConflict
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.RoleAssign(authContext(testUserID), RoleAssignInput{
		UserID: testUserID,
		RoleID: testRoleID,
	})
	wantGoError(t, err, "role already assigned to user", goerror.CodeConflict)
}

func TestRoleAssignUnknownRole(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(context.Context, string) (*entity.Role, error) {
			return nil, goerror.ErrNotFound
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.RoleAssign(authContext(testUserID), RoleAssignInput{
		UserID: testUserID,
		RoleID: testRoleID,
	})
	wantGoError(t, err, "role not found", goerror.CodeNotFound)
}

func TestRolePermissionAssign(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(_ context.Context, id string) (*entity.Role, error) {
			return &entity.Role{ID: id}, nil
		},
		getPermissionByIDFn: func(_ context.Context, id string) (*entity.Permission, error) {
			return &entity.Permission{ID: id, Mode: "read"}, nil
		},
	}
	var created entity.RolePermission
	repo.createRolePermissionFn = func(_ context.Context, rolePermission entity.RolePermission) error {
		created = rolePermission
		return nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.RolePermissionAssign(authContext(testUserID), RolePermissionAssignInput{
		RoleID:       testRoleID,
		PermissionID: testPermissionID,
	})
	if err != nil {
		t.Fatalf("RolePermissionAssign() returned error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("RolePermissionAssign() id = %q, want generated-id", out.ID)
	}
	if created.RoleID != testRoleID || created.PermissionID != testPermissionID {
		t.Fatalf("created role permission = %+v", created)
	}
}

func TestRolePermissionAssignUnknownPermission(t *testing.T) {
	repo := &fakeRepoDB{
		getRoleByIDFn: func(_ context.Context, id string) (*entity.Role, error) {
			return &entity.Role{ID: id}, nil
		},
		getPermissionByIDFn: func(context.Context, string) (*entity.Permission, error) {
			return nil, goerror.ErrNotFound
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.RolePermissionAssign(authContext(testUserID), RolePermissionAssignInput{
		RoleID:       testRoleID,
		PermissionID: testPermissionID,
	})
	wantGoError(t, err, "permission not found", goerror.CodeNotFound)
}

func TestResourceCreate(t *testing.T) {
	repo := &fakeRepoDB{}
	var created entity.Resource
	repo.createResourceFn = func(_ context.Context, resource entity.Resource) error {
		created = resource
		return nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.ResourceCreate(authContext(testUserID), ResourceCreateInput{
		Type:        " invoices ",
		Description: "billing documents",
	})
	if err != nil {
		t.Fatalf("ResourceCreate() returned error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("ResourceCreate() id = %q, want generated-id", out.ID)
	}
	if created.Type != "invoices" {
		t.Fatalf("created resource type = %q, want trimmed invoices", created.Type)
	}
}

func TestResourceCreateDuplicateType(t *testing.T) {
	repo := &fakeRepoDB{
		createResourceFn: func(context.Context, entity.Resource) error {
			return goerror.ErrConflict
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.ResourceCreate(authContext(testUserID), ResourceCreateInput{Type: "invoices"})
	wantGoError(t, err, "resource type already exists", goerror.CodeConflict)
}

func TestResourceList(t *testing.T) {
	repo := &fakeRepoDB{
		getResourceListFn: func(_ context.Context, filter entity.ListFilter) ([]entity.Resource, int64, error) {
			if filter.Size != 10 {
				t.Fatalf("filter size = %d, want default 10", filter.Size)
			}
			return []entity.Resource{{ID: testResourceID, Type: "invoices"}}, 1, nil
		},
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.ResourceList(authContext(testUserID), ResourceListInput{})
	if err != nil {
		t.Fatalf("ResourceList() returned error: %v", err)
	}
	if out.Total != 1 || len(out.Resources) != 1 {
		t.Fatalf("ResourceList() total = %d resources = %d, want 1/1", out.Total, len(out.Resources))
	}
}

func TestResourceDetail(t *testing.T) {
	repo := &fakeRepoDB{
		getResourceByIDFn: func(_ context.Context, id string) (*entity.Resource, error) {
			return &entity.Resource{ID: id, Type: "invoices"}, nil
		},
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.ResourceDetail(authContext(testUserID), ResourceDetailInput{ID: testResourceID})
	if err != nil {
		t.Fatalf("ResourceDetail() returned error: %v", err)
	}
	if out.Resource.ID != testResourceID {
		t.Fatalf("ResourceDetail() id = %q, want %q", out.Resource.ID, testResourceID)
	}
}

func TestPermissionCreate(t *testing.T) {
	repo := &fakeRepoDB{
		getResourceByIDFn: func(_ context.Context, id string) (*entity.Resource, error) {
			return &entity.Resource{ID: id, Type: "invoices"}, nil
		},
	}
	var created entity.Permission
	repo.createPermissionFn = func(_ context.Context, permission entity.Permission) error {
		created = permission
		return nil
	}

	uc := newTestUsecase(t, repo)
	out, err := uc.PermissionCreate(authContext(testUserID), PermissionCreateInput{
		ResourceID: testResourceID,
		Mode:       "write",
	})
	if err != nil {
		t.Fatalf("PermissionCreate() returned error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("PermissionCreate() id = %q, want generated-id", out.ID)
	}
	if created.Mode != "write" || !created.IsActive {
		t.Fatalf("created permission = %+v, want active write mode", created)
	}
}

func TestPermissionCreateInvalidMode(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepoDB{})

	_, err := uc.PermissionCreate(authContext(testUserID), PermissionCreateInput{
		ResourceID: testResourceID,
		Mode:       "execute",
	})
	if err == nil {
		t.Fatal("PermissionCreate() with invalid mode returned nil error")
	}

	var ge *goerror.Error
	if !errors.As(err, &ge) || ge.Code() != goerror.CodeInvalidInput {
		t.Fatalf("error = %v, want validation error with code invalid input", err)
	}
}

func TestPermissionCreateDuplicateMode(t *testing.T) {
	repo := &fakeRepoDB{
		getResourceByIDFn: func(_ context.Context, id string) (*entity.Resource, error) {
			return &entity.Resource{ID: id}, nil
		},
		createPermissionFn: func(context.Context, entity.Permission) error {
			return goerror.ErrConflict
		},
	}

	uc := newTestUsecase(t, repo)
	_, err := uc.PermissionCreate(authContext(testUserID), PermissionCreateInput{
		ResourceID: testResourceID,
		Mode:       "read",
	})
	wantGoError(t, err, "permission already exists for resource", goerror.CodeConflict)
}
