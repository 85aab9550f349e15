package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

func TestPhoneVerify(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return activeUser(), nil
	}
	env.repo.getUserByPhoneFn = func(_ context.Context, phone string) (*entity.User, error) {
		if phone != "+15559998888" {
			t.Fatalf("GetUserByPhone phone = %q, want +15559998888", phone)
		}
		return nil, goerror.ErrNotFound
	}

	ctx := authContext(testUserID, "ada@example.com")
	out, err := env.uc.PhoneVerify(ctx, PhoneVerifyInput{Phone: "+15559998888"})
	if err != nil {
		t.Fatalf("PhoneVerify() returned error: %v", err)
	}
	if out.UserID != testUserID {
		t.Fatalf("PhoneVerify() user id = %q, want %q", out.UserID, testUserID)
	}

	env.flushDispatch(t)

	// The code goes to the new number; the notice goes to the current email.
	if len(env.mq.phones) != 1 || env.mq.phones[0][0] != "+15559998888" {
		t.Fatalf("sms recipients = %v, want [[+15559998888]]", env.mq.phones)
	}
	if len(env.mq.emails) != 1 || env.mq.emails[0][0] != "ada@example.com" {
		t.Fatalf("email recipients = %v, want [[ada@example.com]]", env.mq.emails)
	}
}

func TestPhoneVerifySameOwnerAllowed(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return activeUser(), nil
	}
	env.repo.getUserByPhoneFn = func(context.Context, string) (*entity.User, error) {
		return activeUser(), nil
	}

	ctx := authContext(testUserID, "ada@example.com")
	if _, err := env.uc.PhoneVerify(ctx, PhoneVerifyInput{Phone: "+15550001111"}); err != nil {
		t.Fatalf("PhoneVerify() for own number returned error: %v", err)
	}
}

func TestPhoneVerifyNumberTaken(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return activeUser(), nil
	}
	env.repo.getUserByPhoneFn = func(context.Context, string) (*entity.User, error) {
		other := activeUser()
		other.ID = testOtherID
		return other, nil
	}

	ctx := authContext(testUserID, "ada@example.com")
	_, err := env.uc.PhoneVerify(ctx, PhoneVerifyInput{Phone: "+15559998888"})
	wantGoError(t, err, "phone number already in use", goerror.CodeConflict)
}

func TestPhoneVerifyUnauthenticated(t *testing.T) {
	env := newUsecaseEnv(t)

	_, err := env.uc.PhoneVerify(context.Background(), PhoneVerifyInput{Phone: "+15559998888"})
	wantGoError(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestPhoneChange(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return activeUser(), nil
	}
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		return &entity.OtpRecord{
			UserID:             userID,
			SecToken:           strPtr("sec-token-1"),
			SecTokenExpiration: timePtr(testNow.Add(time.Minute)),
		}, nil
	}

	var storedPhone string
	env.repo.updateUserPhoneFn = func(_ context.Context, id, phone string) error {
		if id != testUserID {
			t.Fatalf("UpdateUserPhone id = %q, want %q", id, testUserID)
		}
		storedPhone = phone
		return nil
	}

	var syncedPhone string
	env.idp.updateUserFn = func(_ context.Context, user entity.User) error {
		syncedPhone = user.Phone
		return nil
	}

	ctx := authContext(testUserID, "ada@example.com")
	out, err := env.uc.PhoneChange(ctx, PhoneChangeInput{Phone: "+15559998888", SecToken: "sec-token-1"})
	if err != nil {
		t.Fatalf("PhoneChange() returned error: %v", err)
	}
	if out.Phone != "+15559998888" || storedPhone != "+15559998888" || syncedPhone != "+15559998888" {
		t.Fatalf("phone = out %q / db %q / idp %q, want +15559998888 everywhere",
			out.Phone, storedPhone, syncedPhone)
	}

	// The security token is burned after the change.
	if len(env.repo.upserts) != 1 {
		t.Fatalf("otp upserts = %d, want 1", len(env.repo.upserts))
	}
	rec := env.repo.upserts[0]
	if rec.OtpCode != nil || rec.OtpCodeExpiration != nil || rec.SecToken != nil || rec.SecTokenExpiration != nil {
		t.Fatalf("rotate upsert = %+v, want all credential fields nil", rec)
	}
}

func TestPhoneChangeSecurityToken(t *testing.T) {
	tests := []struct {
		name     string
		record   *entity.OtpRecord
		recErr   error
		token    string
		wantMsg  string
		wantCode goerror.Code
	}{
		{
			name:     "no otp record",
			recErr:   goerror.ErrNotFound,
			token:    "sec-token-1",
			wantMsg:  "otp record not found",
			wantCode: goerror.CodeNotFound,
		},
		{
			name:     "no token stored",
			record:   &entity.OtpRecord{},
			token:    "sec-token-1",
			wantMsg:  "invalid security token",
			wantCode: goerror.CodeInvalidInput,
		},
		{
			name: "empty token stored",
			record: &entity.OtpRecord{
				SecToken:           strPtr(""),
				SecTokenExpiration: timePtr(testNow.Add(time.Minute)),
			},
			token:    "sec-token-1",
			wantMsg:  "invalid security token",
			wantCode: goerror.CodeInvalidInput,
		},
		{
			name: "token mismatch",
			record: &entity.OtpRecord{
				SecToken:           strPtr("sec-token-1"),
				SecTokenExpiration: timePtr(testNow.Add(time.Minute)),
			},
			token:    "sec-token-2",
			wantMsg:  "invalid security token",
			wantCode: goerror.CodeInvalidInput,
		},
		{
			name: "token expired",
			record: &entity.OtpRecord{
				SecToken:           strPtr("sec-token-1"),
				SecTokenExpiration: timePtr(testNow.Add(-time.Second)),
			},
			token:    "sec-token-1",
			wantMsg:  "security token has expired",
			wantCode: goerror.CodeInvalidInput,
		},
		{
			name:     "token without expiration",
			record:   &entity.OtpRecord{SecToken: strPtr("sec-token-1")},
			token:    "sec-token-1",
			wantMsg:  "security token has expired",
			wantCode: goerror.CodeInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newUsecaseEnv(t)
			env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
				return activeUser(), nil
			}
			env.repo.getOtpRecordFn = func(context.Context, string) (*entity.OtpRecord, error) {
				return tc.record, tc.recErr
			}

			ctx := authContext(testUserID, "ada@example.com")
			_, err := env.uc.PhoneChange(ctx, PhoneChangeInput{Phone: "+15559998888", SecToken: tc.token})
			wantGoError(t, err, tc.wantMsg, tc.wantCode)
		})
	}
}
