package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/messaging"
	"github.com/shandysiswandi/nova/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishEmailOTP(ctx context.Context, recipients []string, code string) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "PublishEmailOTP")
	defer span.End()

	return m.publishOTP(ctx, span, event.EmailNotificationDestination, event.NotificationTypeEmail, recipients, code)
}

func (m *Messaging) PublishSMSOTP(ctx context.Context, recipients []string, code string) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "PublishSMSOTP")
	defer span.End()

	return m.publishOTP(ctx, span, event.SMSNotificationDestination, event.NotificationTypeSMS, recipients, code)
}

func (m *Messaging) publishOTP(ctx context.Context, span trace.Span, topic, typ string, recipients []string, code string) error {
	body, err := json.Marshal(event.NotificationMessage{
		ServiceName: event.NotificationServiceName,
		Meta: event.NotificationMeta{
			Type:    typ,
			Subtype: event.NotificationSubtypeOTP,
		},
		Details:    map[string]string{"otp_code": code},
		Recipients: recipients,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, topic, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
