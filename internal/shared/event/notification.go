package event

// Topics consumed by the downstream notification service.
const (
	EmailNotificationDestination string = "EMAIL_NOTIFICATION"
	SMSNotificationDestination   string = "SMS_NOTIFICATION"
)

// Meta values understood by the notification service.
const (
	NotificationTypeEmail   string = "email_notification"
	NotificationTypeSMS     string = "sms_notification"
	NotificationSubtypeOTP  string = "otp"
	NotificationServiceName string = "nova"
)

// NotificationMeta tells the notification service how to render the message.
type NotificationMeta struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// NotificationMessage is the wire contract shared with the notification service.
//
// Details carries template placeholders; for OTP messages the only key is
// "otp_code".
type NotificationMessage struct {
	ServiceName string            `json:"service_name"`
	Meta        NotificationMeta  `json:"meta"`
	Details     map[string]string `json:"details"`
	Recipients  []string          `json:"recipients"`
}
