package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/push"
	"github.com/campus-hq/portal-service/internal/utils"
)

func newNotificationServiceForTest(repo *mockRepository, sender push.Sender) (NotificationService, *events.MockEventPublisher) {
	logger := newTestLogger()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewNotificationService(repo, logger, utils.NewValidator(), sender, publisher)
	return svc, publisher
}

func activeSubscription(id uint, ownerType models.OwnerType) *models.PushSubscription {
	sub := &models.PushSubscription{
		Endpoint: "https://push.example.com/sub",
		Keys: datatypes.NewJSONType(models.PushSubscriptionKeys{
			P256dh: "p256dh-key",
			Auth:   "auth-secret",
		}),
		OwnerID:   id,
		OwnerType: ownerType,
		IsActive:  true,
	}
	sub.ID = id
	return sub
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("zero limit asks the store for the cap", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("ListLogs", mock.Anything, 50).Return([]*models.PushNotification{}, nil).Once()

		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, &push.MockSender{})

		_, err := svc.List(ctx, 0)
		require.NoError(t, err)
		pushRepo.AssertExpectations(t)
	})

	t.Run("oversized limit is clamped to 50", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("ListLogs", mock.Anything, 50).Return([]*models.PushNotification{}, nil).Once()

		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, &push.MockSender{})

		_, err := svc.List(ctx, 500)
		require.NoError(t, err)
		pushRepo.AssertExpectations(t)
	})

	t.Run("smaller limit passes through", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("ListLogs", mock.Anything, 10).Return([]*models.PushNotification{}, nil).Once()

		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, &push.MockSender{})

		_, err := svc.List(ctx, 10)
		require.NoError(t, err)
		pushRepo.AssertExpectations(t)
	})
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()

	// Deleting an ID that was already removed reports success; the
	// store treats delete as idempotent.
	pushRepo := &MockPushRepository{}
	pushRepo.On("DeleteLog", mock.Anything, uint(99)).Return(nil).Twice()

	svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, &push.MockSender{})

	require.NoError(t, svc.Delete(ctx, 99))
	require.NoError(t, svc.Delete(ctx, 99))
	pushRepo.AssertExpectations(t)
}

func TestNotificationService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("fans out to every active subscription", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("CreateLog", mock.Anything, mock.MatchedBy(func(n *models.PushNotification) bool {
			return n.Title == "Exam tomorrow" && n.Audience == "all"
		})).Return(nil)
		pushRepo.On("ListActiveSubscriptions", mock.Anything).Return([]*models.PushSubscription{
			activeSubscription(1, models.OwnerStudent),
			activeSubscription(2, models.OwnerAdmin),
		}, nil)

		sender := &push.MockSender{}
		svc, publisher := newNotificationServiceForTest(&mockRepository{push: pushRepo}, sender)

		result, err := svc.Send(ctx, &SendNotificationRequest{
			Title: "Exam tomorrow",
			Body:  "CSC101 midterm holds at 9am",
		}, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Delivered)
		assert.Equal(t, 0, result.Failed)
		assert.Len(t, sender.Delivered, 2)

		require.Len(t, publisher.GetPublishedEvents(), 1)
		assert.Equal(t, events.EventPushBroadcast, publisher.GetPublishedEvents()[0].Type)
	})

	t.Run("student audience skips admin subscriptions", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("CreateLog", mock.Anything, mock.Anything).Return(nil)
		pushRepo.On("ListActiveSubscriptions", mock.Anything).Return([]*models.PushSubscription{
			activeSubscription(1, models.OwnerStudent),
			activeSubscription(2, models.OwnerAdmin),
		}, nil)

		sender := &push.MockSender{}
		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, sender)

		result, err := svc.Send(ctx, &SendNotificationRequest{
			Title:    "Results out",
			Body:     "Check your dashboard",
			Audience: "students",
		}, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Delivered)
		assert.Len(t, sender.Delivered, 1)
	})

	t.Run("delivery failures never fail the request", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("CreateLog", mock.Anything, mock.Anything).Return(nil)
		pushRepo.On("ListActiveSubscriptions", mock.Anything).Return([]*models.PushSubscription{
			activeSubscription(1, models.OwnerStudent),
		}, nil)

		sender := &push.MockSender{Err: errors.New("push service down")}
		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, sender)

		result, err := svc.Send(ctx, &SendNotificationRequest{
			Title: "Exam tomorrow",
			Body:  "Be there",
		}, 1)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Delivered)
		assert.Equal(t, 1, result.Failed)
		pushRepo.AssertNotCalled(t, "DeactivateSubscription", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("stores endpoint and keys", func(t *testing.T) {
		pushRepo := &MockPushRepository{}
		pushRepo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub *models.PushSubscription) bool {
			keys := sub.Keys.Data()
			return sub.Endpoint == "https://push.example.com/abc" &&
				keys.P256dh == "p256dh-key" &&
				sub.IsActive
		})).Return(nil).Once()

		svc, _ := newNotificationServiceForTest(&mockRepository{push: pushRepo}, &push.MockSender{})

		_, err := svc.Subscribe(ctx, &SubscribeRequest{
			Endpoint:  "https://push.example.com/abc",
			P256dh:    "p256dh-key",
			Auth:      "auth-secret",
			OwnerID:   7,
			OwnerType: models.OwnerStudent,
		})

		require.NoError(t, err)
		pushRepo.AssertExpectations(t)
	})

	t.Run("missing keys fail validation", func(t *testing.T) {
		svc, _ := newNotificationServiceForTest(&mockRepository{}, &push.MockSender{})

		_, err := svc.Subscribe(ctx, &SubscribeRequest{
			Endpoint:  "https://push.example.com/abc",
			OwnerID:   7,
			OwnerType: models.OwnerStudent,
		})

		assert.True(t, IsValidation(err))
	})
}
