// Package messaging provides a broker-agnostic API for publishing messages.
//
// The goal is to keep business code independent from the underlying messaging
// system (Kafka, NATS, etc). Notification messages published here are consumed
// by a separate downstream service, so only the publish side is modeled.
package messaging
