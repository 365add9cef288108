package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/campus-hq/portal-service/internal/models"
)

// Payload is the JSON body handed to the browser's service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sender delivers a payload to one stored subscription. A Gone/NotFound
// response means the browser dropped the endpoint and the subscription
// should be deactivated.
type Sender interface {
	Send(ctx context.Context, sub *models.PushSubscription, payload Payload) error
}

// ErrSubscriptionGone is returned when the push service reports the
// endpoint no longer exists.
type subscriptionGoneError struct {
	statusCode int
}

func (e *subscriptionGoneError) Error() string {
	return fmt.Sprintf("push subscription gone: status %d", e.statusCode)
}

// IsSubscriptionGone reports whether the delivery failure means the
// endpoint is dead and the subscription should be deactivated.
func IsSubscriptionGone(err error) bool {
	_, ok := err.(*subscriptionGoneError)
	return ok
}

type webpushSender struct {
	publicKey  string
	privateKey string
	subject    string
	logger     *slog.Logger
}

func NewWebpushSender(publicKey, privateKey, subject string, logger *slog.Logger) Sender {
	return &webpushSender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subject:    subject,
		logger:     logger,
	}
}

func (s *webpushSender) Send(ctx context.Context, sub *models.PushSubscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	keys := sub.Keys.Data()
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: keys.P256dh,
			Auth:   keys.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, target, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		return &subscriptionGoneError{statusCode: resp.StatusCode}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push service rejected message: status %d", resp.StatusCode)
	}

	return nil
}

// MockSender records payloads in memory for tests.
type MockSender struct {
	Delivered []Payload
	Err       error
}

func (m *MockSender) Send(ctx context.Context, sub *models.PushSubscription, payload Payload) error {
	if m.Err != nil {
		return m.Err
	}
	m.Delivered = append(m.Delivered, payload)
	return nil
}
