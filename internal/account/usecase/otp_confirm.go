package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
)

type OtpConfirmInput struct {
	UserID  string `validate:"required,uuid"`
	OtpCode string `validate:"required,len=6,numeric"`
}

type OtpConfirmOutput struct {
	UserID   string
	SecToken string
}

// OtpConfirm exchanges a valid code for a short-lived security token. The
// token is the only credential the sensitive account mutations accept.
func (s *Usecase) OtpConfirm(ctx context.Context, in OtpConfirmInput) (*OtpConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpConfirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	rec, err := s.repoDB.GetOtpRecordByUserID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record not found", "user_id", in.UserID)
		return nil, goerror.NewBusiness("otp record not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp record", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.isMasterOTPCode(ctx, in.UserID, in.OtpCode) {
		if rec.OtpCode == nil || *rec.OtpCode != in.OtpCode {
			slog.WarnContext(ctx, "otp code mismatch", "user_id", in.UserID)
			return nil, goerror.NewBusiness("invalid otp code", goerror.CodeInvalidInput)
		}

		if rec.OtpCodeExpiration == nil || s.clock.Now().After(*rec.OtpCodeExpiration) {
			slog.WarnContext(ctx, "otp code expired", "user_id", in.UserID)
			return nil, goerror.NewBusiness("otp code has expired", goerror.CodeInvalidInput)
		}
	}

	token, err := s.otp.Token(secTokenByteLength)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate security token", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	exp := s.clock.Now().Add(s.cfg.GetMinute("modules.account.sec_token_ttl_minutes"))
	if err := s.repoDB.UpsertOtpRecord(ctx, entity.OtpUpsert{
		ID:                 s.uuid.Generate(),
		UserID:             in.UserID,
		SecToken:           &token,
		SecTokenExpiration: &exp,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp record", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OtpConfirmOutput{UserID: in.UserID, SecToken: token}, nil
}
