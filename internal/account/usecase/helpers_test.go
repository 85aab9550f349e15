package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/config"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/goroutine"
	"github.com/shandysiswandi/nova/internal/pkg/idempotency"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
	"github.com/shandysiswandi/nova/internal/pkg/validator"
)

const (
	testUserID  = "0b26eff1-8c86-4bb1-bb66-3bb8e1d33911"
	testOtherID = "5c1f8a02-43c7-4f5e-9a55-2f1c9a7d0c42"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	getUserByIDFn        func(ctx context.Context, id string, includeDeleted bool) (*entity.User, error)
	getUserByUsernameFn  func(ctx context.Context, username string) (*entity.User, error)
	getUserByPhoneFn     func(ctx context.Context, phone string) (*entity.User, error)
	getUserListFn        func(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	createUserFn         func(ctx context.Context, user entity.User) error
	patchUserFn          func(ctx context.Context, in entity.PatchUser) error
	updateUserPhoneFn    func(ctx context.Context, id, phone string) error
	updateUserPasswordFn func(ctx context.Context, id, hashed string) error
	markUserDeletedFn    func(ctx context.Context, id string) error
	getOtpRecordFn       func(ctx context.Context, userID string) (*entity.OtpRecord, error)
	upsertOtpRecordFn    func(ctx context.Context, rec entity.OtpUpsert) error

	upserts []entity.OtpUpsert
}

func (f *fakeRepoDB) GetUserByID(ctx context.Context, id string, includeDeleted bool) (*entity.User, error) {
	if f.getUserByIDFn == nil {
		panic("unexpected call to GetUserByID")
	}
	return f.getUserByIDFn(ctx, id, includeDeleted)
}

func (f *fakeRepoDB) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	if f.getUserByUsernameFn == nil {
		panic("unexpected call to GetUserByUsername")
	}
	return f.getUserByUsernameFn(ctx, username)
}

func (f *fakeRepoDB) GetUserByPhone(ctx context.Context, phone string) (*entity.User, error) {
	if f.getUserByPhoneFn == nil {
		panic("unexpected call to GetUserByPhone")
	}
	return f.getUserByPhoneFn(ctx, phone)
}

func (f *fakeRepoDB) GetUserList(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
	if f.getUserListFn == nil {
		panic("unexpected call to GetUserList")
	}
	return f.getUserListFn(ctx, filter)
}

func (f *fakeRepoDB) CreateUser(ctx context.Context, user entity.User) error {
	if f.createUserFn == nil {
		panic("unexpected call to CreateUser")
	}
	return f.createUserFn(ctx, user)
}

func (f *fakeRepoDB) PatchUser(ctx context.Context, in entity.PatchUser) error {
	if f.patchUserFn == nil {
		panic("unexpected call to PatchUser")
	}
	return f.patchUserFn(ctx, in)
}

func (f *fakeRepoDB) UpdateUserPhone(ctx context.Context, id, phone string) error {
	if f.updateUserPhoneFn == nil {
		panic("unexpected call to UpdateUserPhone")
	}
	return f.updateUserPhoneFn(ctx, id, phone)
}

func (f *fakeRepoDB) UpdateUserPassword(ctx context.Context, id, hashed string) error {
	if f.updateUserPasswordFn == nil {
		panic("unexpected call to UpdateUserPassword")
	}
	return f.updateUserPasswordFn(ctx, id, hashed)
}

func (f *fakeRepoDB) MarkUserDeleted(ctx context.Context, id string) error {
	if f.markUserDeletedFn == nil {
		panic("unexpected call to MarkUserDeleted")
	}
	return f.markUserDeletedFn(ctx, id)
}

func (f *fakeRepoDB) GetOtpRecordByUserID(ctx context.Context, userID string) (*entity.OtpRecord, error) {
	if f.getOtpRecordFn == nil {
		panic("unexpected call to GetOtpRecordByUserID")
	}
	return f.getOtpRecordFn(ctx, userID)
}

func (f *fakeRepoDB) UpsertOtpRecord(ctx context.Context, rec entity.OtpUpsert) error {
	f.upserts = append(f.upserts, rec)
	if f.upsertOtpRecordFn == nil {
		return nil
	}
	return f.upsertOtpRecordFn(ctx, rec)
}

type fakeMessaging struct {
	emailErr error
	smsErr   error

	emails [][]string
	phones [][]string
	codes  []string
}

func (f *fakeMessaging) PublishEmailOTP(_ context.Context, recipients []string, code string) error {
	f.emails = append(f.emails, recipients)
	f.codes = append(f.codes, code)
	return f.emailErr
}

func (f *fakeMessaging) PublishSMSOTP(_ context.Context, recipients []string, code string) error {
	f.phones = append(f.phones, recipients)
	f.codes = append(f.codes, code)
	return f.smsErr
}

type fakeIDP struct {
	getTokenFn       func(ctx context.Context, username, password string) (*entity.TokenPair, error)
	refreshTokenFn   func(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	createUserFn     func(ctx context.Context, user entity.User, password string) (string, error)
	updateUserFn     func(ctx context.Context, user entity.User) error
	deleteUserFn     func(ctx context.Context, username string) error
	changePasswordFn func(ctx context.Context, username, newPassword string) error
}

func (f *fakeIDP) GetToken(ctx context.Context, username, password string) (*entity.TokenPair, error) {
	if f.getTokenFn == nil {
		panic("unexpected call to GetToken")
	}
	return f.getTokenFn(ctx, username, password)
}

func (f *fakeIDP) RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	if f.refreshTokenFn == nil {
		panic("unexpected call to RefreshToken")
	}
	return f.refreshTokenFn(ctx, refreshToken)
}

func (f *fakeIDP) CreateUser(ctx context.Context, user entity.User, password string) (string, error) {
	if f.createUserFn == nil {
		panic("unexpected call to CreateUser")
	}
	return f.createUserFn(ctx, user, password)
}

func (f *fakeIDP) UpdateUser(ctx context.Context, user entity.User) error {
	if f.updateUserFn == nil {
		panic("unexpected call to UpdateUser")
	}
	return f.updateUserFn(ctx, user)
}

func (f *fakeIDP) DeleteUser(ctx context.Context, username string) error {
	if f.deleteUserFn == nil {
		panic("unexpected call to DeleteUser")
	}
	return f.deleteUserFn(ctx, username)
}

func (f *fakeIDP) ChangePassword(ctx context.Context, username, newPassword string) error {
	if f.changePasswordFn == nil {
		panic("unexpected call to ChangePassword")
	}
	return f.changePasswordFn(ctx, username, newPassword)
}

// fakeIdempotency runs the callback inline unless execErr is set, in which
// case the callback never runs.
type fakeIdempotency struct {
	execErr error
	keys    []string
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

// fakeConfig serves the handful of keys the usecases read. Anything else
// panics through the embedded nil interface.
type fakeConfig struct {
	config.Config
	minutes map[string]int
	seconds map[string]int
	arrays  map[string][]string
}

func (f *fakeConfig) GetMinute(key string) time.Duration {
	return time.Duration(f.minutes[key]) * time.Minute
}

func (f *fakeConfig) GetSecond(key string) time.Duration {
	return time.Duration(f.seconds[key]) * time.Second
}

func (f *fakeConfig) GetArray(key string) []string {
	return f.arrays[key]
}

type fakeHash struct{ hashErr error }

func (f *fakeHash) Hash(plaintext string) ([]byte, error) {
	if f.hashErr != nil {
		return nil, f.hashErr
	}
	return []byte("hashed:" + plaintext), nil
}

func (f *fakeHash) Verify(hashed, plaintext string) bool {
	return hashed == "hashed:"+plaintext
}

type fakeOTPGenerator struct {
	code     string
	token    string
	codeErr  error
	tokenErr error
}

func (f *fakeOTPGenerator) Code(int) (string, error) {
	return f.code, f.codeErr
}

func (f *fakeOTPGenerator) Token(int) (string, error) {
	return f.token, f.tokenErr
}

type fakeStringID struct{ id string }

func (f *fakeStringID) Generate() string { return f.id }

type fixedClock struct{ now time.Time }

func (f *fixedClock) Now() time.Time { return f.now }

type fakeJWT struct{ genErr error }

func (f *fakeJWT) Generate(uid, _ string) (string, error) {
	if f.genErr != nil {
		return "", f.genErr
	}
	return "jwt-" + uid, nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type usecaseEnv struct {
	repo      *fakeRepoDB
	mq        *fakeMessaging
	idp       *fakeIDP
	idemp     *fakeIdempotency
	cfg       *fakeConfig
	otp       *fakeOTPGenerator
	clock     *fixedClock
	jwt       *fakeJWT
	goroutine *goroutine.Manager
	uc        *Usecase
}

func newUsecaseEnv(t *testing.T) *usecaseEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() returned error: %v", err)
	}

	env := &usecaseEnv{
		repo:  &fakeRepoDB{},
		mq:    &fakeMessaging{},
		idp:   &fakeIDP{},
		idemp: &fakeIdempotency{},
		cfg: &fakeConfig{
			minutes: map[string]int{
				"modules.account.otp_ttl_minutes":       5,
				"modules.account.sec_token_ttl_minutes": 10,
			},
			seconds: map[string]int{
				"modules.account.otp_send_lock_seconds": 60,
			},
			arrays: map[string][]string{},
		},
		otp:       &fakeOTPGenerator{code: "123456", token: "sec-token-1"},
		clock:     &fixedClock{now: testNow},
		jwt:       &fakeJWT{},
		goroutine: goroutine.NewManager(4),
	}

	env.uc = New(Dependency{
		RepoDB:        env.repo,
		RepoMessaging: env.mq,
		IDP:           env.idp,
		Idempotency:   env.idemp,
		Validator:     v10,
		Config:        env.cfg,
		Bcrypt:        &fakeHash{},
		OTP:           env.otp,
		UUID:          &fakeStringID{id: "generated-id"},
		Clock:         env.clock,
		JWT:           env.jwt,
		Instrument:    instrument.NewNoop(),
		Goroutine:     env.goroutine,
	})

	return env
}

// flushDispatch waits for the fire and forget notification goroutines.
func (e *usecaseEnv) flushDispatch(t *testing.T) {
	t.Helper()

	if err := e.goroutine.Wait(); err != nil {
		t.Fatalf("goroutine.Wait() returned error: %v", err)
	}
}

func authContext(userID, username string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Username: username})
}

func activeUser() *entity.User {
	return &entity.User{
		ID:         testUserID,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Username:   "ada@example.com",
		Email:      "ada@example.com",
		Phone:      "+15550001111",
		Password:   "hashed:current-password",
		IsVerified: true,
		Status:     entity.UserStatusActive,
	}
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

func wantCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("error = nil, want code %s", code)
	}

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if ge.Code() != code {
		t.Fatalf("error code = %s, want %s", ge.Code(), code)
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
