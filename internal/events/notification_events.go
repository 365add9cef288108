package events

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEventType identifies what happened in the portal.
type NotificationEventType string

const (
	EventStudentRegistered NotificationEventType = "student.registered"
	EventOTPSent           NotificationEventType = "otp.sent"
	EventExamActivated     NotificationEventType = "exam.activated"
	EventResultRecorded    NotificationEventType = "result.recorded"
	EventPushBroadcast     NotificationEventType = "push.broadcast"
)

// NotificationEvent is the envelope published to the notification topic.
// Consumers (mailers, dashboards) key off Type; Payload is event-specific.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      NotificationEventType  `json:"type"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewNotificationEvent builds an event envelope with a fresh ID.
func NewNotificationEvent(eventType NotificationEventType, payload map[string]interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "portal-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
