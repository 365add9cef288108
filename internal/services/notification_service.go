package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/push"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
	"gorm.io/datatypes"
)

// Listing is capped regardless of what the caller asks for.
const maxNotificationList = 50

type SubscribeRequest struct {
	Endpoint  string           `json:"endpoint" validate:"required,url"`
	P256dh    string           `json:"p256dh" validate:"required"`
	Auth      string           `json:"auth" validate:"required"`
	OwnerID   uint             `json:"owner_id" validate:"required"`
	OwnerType models.OwnerType `json:"owner_type" validate:"required,owner_type"`
}

type SendNotificationRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Body     string `json:"body" validate:"required,min=1"`
	Audience string `json:"audience" validate:"omitempty,oneof=all students admins"`
}

type SendNotificationResult struct {
	NotificationID uint `json:"notification_id"`
	Delivered      int  `json:"delivered"`
	Failed         int  `json:"failed"`
}

// NotificationService manages push subscriptions, the broadcast log, and
// delivery fan-out. Delivery status per endpoint is not tracked; a dead
// endpoint just deactivates its subscription.
type NotificationService interface {
	Subscribe(ctx context.Context, req *SubscribeRequest) (*models.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error

	// List returns log entries most-recent-first, never more than 50.
	List(ctx context.Context, limit int) ([]*models.PushNotification, error)
	// Delete is idempotent: deleting an unknown ID succeeds.
	Delete(ctx context.Context, id uint) error

	Send(ctx context.Context, req *SendNotificationRequest, createdBy uint) (*SendNotificationResult, error)
}

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	sender    push.Sender
	publisher events.EventPublisher
}

func NewNotificationService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	sender push.Sender,
	publisher events.EventPublisher,
) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		sender:    sender,
		publisher: publisher,
	}
}

func (s *notificationService) Subscribe(ctx context.Context, req *SubscribeRequest) (*models.PushSubscription, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	sub := &models.PushSubscription{
		Endpoint: req.Endpoint,
		Keys: datatypes.NewJSONType(models.PushSubscriptionKeys{
			P256dh: req.P256dh,
			Auth:   req.Auth,
		}),
		OwnerID:   req.OwnerID,
		OwnerType: req.OwnerType,
		IsActive:  true,
	}
	if err := s.repo.Push().CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	s.logger.Info("push subscription stored",
		"owner_id", req.OwnerID,
		"owner_type", req.OwnerType)
	return sub, nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return NewValidationError("endpoint", "is required", endpoint)
	}
	return s.repo.Push().DeleteSubscriptionByEndpoint(ctx, endpoint)
}

func (s *notificationService) List(ctx context.Context, limit int) ([]*models.PushNotification, error) {
	if limit <= 0 || limit > maxNotificationList {
		limit = maxNotificationList
	}
	return s.repo.Push().ListLogs(ctx, limit)
}

func (s *notificationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Push().DeleteLog(ctx, id)
}

func (s *notificationService) Send(ctx context.Context, req *SendNotificationRequest, createdBy uint) (*SendNotificationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	audience := req.Audience
	if audience == "" {
		audience = "all"
	}

	entry := &models.PushNotification{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  audience,
		CreatedBy: createdBy,
	}
	if err := s.repo.Push().CreateLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log notification: %w", err)
	}

	subs, err := s.repo.Push().ListActiveSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	payload := push.Payload{Title: req.Title, Body: req.Body}
	result := &SendNotificationResult{NotificationID: entry.ID}

	for _, sub := range subs {
		if !audienceMatches(audience, sub.OwnerType) {
			continue
		}
		if err := s.sender.Send(ctx, sub, payload); err != nil {
			result.Failed++
			if push.IsSubscriptionGone(err) {
				if derr := s.repo.Push().DeactivateSubscription(ctx, sub.ID); derr != nil {
					s.logger.Warn("failed to deactivate dead subscription",
						"subscription_id", sub.ID, "error", derr)
				}
				continue
			}
			s.logger.Warn("push delivery failed",
				"subscription_id", sub.ID, "error", err)
			continue
		}
		result.Delivered++
	}

	if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(
		events.EventPushBroadcast,
		map[string]interface{}{
			"notification_id": entry.ID,
			"audience":        audience,
			"delivered":       result.Delivered,
			"failed":          result.Failed,
		},
	)); err != nil {
		s.logger.Warn("failed to publish broadcast event", "error", err)
	}

	s.logger.Info("notification broadcast",
		"notification_id", entry.ID,
		"delivered", result.Delivered,
		"failed", result.Failed)

	return result, nil
}

func audienceMatches(audience string, ownerType models.OwnerType) bool {
	switch audience {
	case "students":
		return ownerType == models.OwnerStudent
	case "admins":
		return ownerType == models.OwnerAdmin
	default:
		return true
	}
}
