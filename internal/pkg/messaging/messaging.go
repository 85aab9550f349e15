package messaging

import (
	"context"
	"io"
	"time"
)

// Messaging is a broker-agnostic client that can publish messages.
//
// Implementations can wrap Kafka, NATS or any other messaging system.
type Messaging interface {
	io.Closer

	Publisher
}

// Publisher publishes messages to a destination (topic/subject).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is commonly used by Kafka for partitioning.
	Key []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// Topic is the topic or subject used for publishing.
	Topic string

	// Timestamp is when the client handed the message to the broker.
	Timestamp time.Time
}
