package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/idempotency"
)

func TestOtpSend(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(_ context.Context, id string, includeDeleted bool) (*entity.User, error) {
		if id != testUserID {
			t.Fatalf("GetUserByID id = %q, want %q", id, testUserID)
		}
		if includeDeleted {
			t.Fatal("GetUserByID includeDeleted = true, want false")
		}
		return activeUser(), nil
	}

	out, err := env.uc.OtpSend(context.Background(), OtpSendInput{UserID: testUserID, SMS: true, Email: true})
	if err != nil {
		t.Fatalf("OtpSend() returned error: %v", err)
	}
	if out.UserID != testUserID {
		t.Fatalf("OtpSend() user id = %q, want %q", out.UserID, testUserID)
	}

	if len(env.idemp.keys) != 1 || env.idemp.keys[0] != "otp:send:"+testUserID {
		t.Fatalf("idempotency keys = %v, want [otp:send:%s]", env.idemp.keys, testUserID)
	}

	if len(env.repo.upserts) != 1 {
		t.Fatalf("otp upserts = %d, want 1", len(env.repo.upserts))
	}
	rec := env.repo.upserts[0]
	if rec.OtpCode == nil || *rec.OtpCode != "123456" {
		t.Fatalf("upsert otp code = %v, want 123456", rec.OtpCode)
	}
	wantExp := testNow.Add(5 * time.Minute)
	if rec.OtpCodeExpiration == nil || !rec.OtpCodeExpiration.Equal(wantExp) {
		t.Fatalf("upsert otp expiration = %v, want %v", rec.OtpCodeExpiration, wantExp)
	}
	if rec.SecToken != nil || rec.SecTokenExpiration != nil {
		t.Fatal("issuing a code must clear the security token")
	}

	env.flushDispatch(t)
	if len(env.mq.emails) != 1 || env.mq.emails[0][0] != "ada@example.com" {
		t.Fatalf("email recipients = %v, want [[ada@example.com]]", env.mq.emails)
	}
	if len(env.mq.phones) != 1 || env.mq.phones[0][0] != "+15550001111" {
		t.Fatalf("sms recipients = %v, want [[+15550001111]]", env.mq.phones)
	}
}

func TestOtpSendNoChannel(t *testing.T) {
	env := newUsecaseEnv(t)

	_, err := env.uc.OtpSend(context.Background(), OtpSendInput{UserID: testUserID})
	wantGoError(t, err, "at least one of sms or email must be requested", goerror.CodeInvalidFormat)
}

func TestOtpSendInvalidUserID(t *testing.T) {
	env := newUsecaseEnv(t)

	_, err := env.uc.OtpSend(context.Background(), OtpSendInput{UserID: "not-a-uuid", Email: true})
	wantCode(t, err, goerror.CodeInvalidInput)
}

func TestOtpSendUserNotFound(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return nil, goerror.ErrNotFound
	}

	_, err := env.uc.OtpSend(context.Background(), OtpSendInput{UserID: testUserID, SMS: true})
	wantGoError(t, err, "user not found", goerror.CodeNotFound)
}

func TestOtpSendAlreadyInFlight(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getUserByIDFn = func(context.Context, string, bool) (*entity.User, error) {
		return activeUser(), nil
	}
	env.idemp.execErr = idempotency.ErrAlreadyInProgress

	_, err := env.uc.OtpSend(context.Background(), OtpSendInput{UserID: testUserID, SMS: true})
	wantGoError(t, err, "otp already sent, try again shortly", goerror.CodeConflict)
}

func TestOtpConfirm(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		return &entity.OtpRecord{
			ID:                "rec-1",
			UserID:            userID,
			OtpCode:           strPtr("123456"),
			OtpCodeExpiration: timePtr(testNow.Add(time.Minute)),
		}, nil
	}

	out, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "123456"})
	if err != nil {
		t.Fatalf("OtpConfirm() returned error: %v", err)
	}
	if out.SecToken != "sec-token-1" {
		t.Fatalf("OtpConfirm() token = %q, want sec-token-1", out.SecToken)
	}

	if len(env.repo.upserts) != 1 {
		t.Fatalf("otp upserts = %d, want 1", len(env.repo.upserts))
	}
	rec := env.repo.upserts[0]
	if rec.SecToken == nil || *rec.SecToken != "sec-token-1" {
		t.Fatalf("upsert sec token = %v, want sec-token-1", rec.SecToken)
	}
	wantExp := testNow.Add(10 * time.Minute)
	if rec.SecTokenExpiration == nil || !rec.SecTokenExpiration.Equal(wantExp) {
		t.Fatalf("upsert sec token expiration = %v, want %v", rec.SecTokenExpiration, wantExp)
	}
	if rec.OtpCode != nil || rec.OtpCodeExpiration != nil {
		t.Fatal("confirming must clear the one-time code")
	}
}

func TestOtpConfirmWrongCode(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		return &entity.OtpRecord{
			UserID:            userID,
			OtpCode:           strPtr("123456"),
			OtpCodeExpiration: timePtr(testNow.Add(time.Minute)),
		}, nil
	}

	_, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "654321"})
	wantGoError(t, err, "invalid otp code", goerror.CodeInvalidInput)
}

func TestOtpConfirmExpiredCode(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		return &entity.OtpRecord{
			UserID:            userID,
			OtpCode:           strPtr("123456"),
			OtpCodeExpiration: timePtr(testNow.Add(-time.Second)),
		}, nil
	}

	_, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "123456"})
	wantGoError(t, err, "otp code has expired", goerror.CodeInvalidInput)
}

func TestOtpConfirmNoRecord(t *testing.T) {
	env := newUsecaseEnv(t)
	env.repo.getOtpRecordFn = func(context.Context, string) (*entity.OtpRecord, error) {
		return nil, goerror.ErrNotFound
	}

	_, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "123456"})
	wantGoError(t, err, "otp record not found", goerror.CodeNotFound)
}

func TestOtpConfirmMasterCode(t *testing.T) {
	env := newUsecaseEnv(t)
	env.cfg.arrays["modules.account.master_otp_codes"] = []string{"999999"}
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		// Even an expired code record must not block the master code.
		return &entity.OtpRecord{
			UserID:            userID,
			OtpCode:           strPtr("123456"),
			OtpCodeExpiration: timePtr(testNow.Add(-time.Hour)),
		}, nil
	}

	out, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "999999"})
	if err != nil {
		t.Fatalf("OtpConfirm() with master code returned error: %v", err)
	}
	if out.SecToken != "sec-token-1" {
		t.Fatalf("OtpConfirm() token = %q, want sec-token-1", out.SecToken)
	}
}

func TestOtpConfirmEmptyMasterCodeIgnored(t *testing.T) {
	env := newUsecaseEnv(t)
	env.cfg.arrays["modules.account.master_otp_codes"] = []string{""}
	env.repo.getOtpRecordFn = func(_ context.Context, userID string) (*entity.OtpRecord, error) {
		return &entity.OtpRecord{UserID: userID}, nil
	}

	// An empty allow-list entry must never match; the record has no code, so
	// the confirm fails as a mismatch.
	_, err := env.uc.OtpConfirm(context.Background(), OtpConfirmInput{UserID: testUserID, OtpCode: "000000"})
	wantGoError(t, err, "invalid otp code", goerror.CodeInvalidInput)
}
