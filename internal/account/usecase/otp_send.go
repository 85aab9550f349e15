package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/idempotency"
)

type OtpSendInput struct {
	UserID string `validate:"required,uuid"`
	SMS    bool
	Email  bool
}

type OtpSendOutput struct {
	UserID string
}

// OtpSend issues a fresh code for the user and dispatches it over the
// requested channels. Issuing always overwrites the previous code, so a
// resend invalidates whatever was sent before.
func (s *Usecase) OtpSend(ctx context.Context, in OtpSendInput) (*OtpSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpSend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !in.SMS && !in.Email {
		return nil, goerror.NewInvalidFormat("at least one of sms or email must be requested")
	}

	user, err := s.getUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	// The lock only absorbs double-submits; its TTL is short so a genuine
	// resend still goes through.
	err = s.idemp.Exec(ctx, "otp:send:"+user.ID, func(ctx context.Context) error {
		code, err := s.issueOTP(ctx, user.ID)
		if err != nil {
			return err
		}

		var emails, phones []string
		if in.Email {
			emails = append(emails, user.Email)
		}
		if in.SMS {
			phones = append(phones, user.Phone)
		}
		s.dispatchOTP(ctx, code, emails, phones)

		return nil
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.account.otp_send_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.account.otp_send_lock_seconds")),
	)
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.WarnContext(ctx, "otp send already handled recently", "user_id", user.ID)
		return nil, goerror.NewBusiness("otp already sent, try again shortly", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return &OtpSendOutput{UserID: user.ID}, nil
}
