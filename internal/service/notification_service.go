package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/persistence"
	"github.com/spec-kit/job-portal/internal/repository"
)

// NotificationService turns domain events into persisted in-app
// notifications and fans them out over Redis pub/sub for connected clients.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	redis         *persistence.Redis
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		redis:         redis,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to the events that produce notifications.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventJobApproved, n.handleJobModerated)
	n.dispatcher.Subscribe(events.EventJobRejected, n.handleJobModerated)
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleApplicationStatusChanged)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventEmployerApproved, n.handleEmployerApproved)
}

// ListForAccount returns a page of notifications with the unread count.
func (n *NotificationService) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Notification, int64, error) {
	items, err := n.notifications.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := n.notifications.CountUnread(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead marks one notification read for its owner.
func (n *NotificationService) MarkRead(ctx context.Context, accountID, notificationID string) error {
	return n.notifications.MarkRead(ctx, notificationID, accountID)
}

// MarkAllRead marks every unread notification for the account.
func (n *NotificationService) MarkAllRead(ctx context.Context, accountID string) error {
	return n.notifications.MarkAllRead(ctx, accountID)
}

func (n *NotificationService) handleJobModerated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.JobModeratedPayload)
	if !ok {
		return nil
	}
	kind := domain.NotificationJobApproved
	title := "Job approved"
	body := fmt.Sprintf("Your job %q is now live.", payload.Title)
	if event.Type == events.EventJobRejected {
		kind = domain.NotificationJobRejected
		title = "Job rejected"
		body = fmt.Sprintf("Your job %q was rejected.", payload.Title)
		if payload.Reason != nil {
			body = fmt.Sprintf("Your job %q was rejected: %s", payload.Title, *payload.Reason)
		}
	}
	return n.notify(ctx, payload.EmployerID, kind, title, body)
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationSubmittedPayload)
	if !ok {
		return nil
	}
	return n.notify(ctx, payload.EmployerID, domain.NotificationApplicationNew,
		"New application",
		fmt.Sprintf("A candidate applied to %q.", payload.JobTitle))
}

func (n *NotificationService) handleApplicationStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationStatusChangedPayload)
	if !ok {
		return nil
	}
	return n.notify(ctx, payload.CandidateID, domain.NotificationApplicationUpdated,
		"Application updated",
		fmt.Sprintf("Your application to %q is now %s.", payload.JobTitle, payload.NewStatus))
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok || payload.RecipientID == "" {
		return nil
	}
	// Chat delivery also goes to the conversation channel for open chat
	// windows; the stored notification covers offline recipients.
	n.publishRealtime(ctx, fmt.Sprintf("chat:%s", payload.ConversationID), event)
	return n.notify(ctx, payload.RecipientID, domain.NotificationMessageReceived,
		"New message", payload.BodyPreview)
}

func (n *NotificationService) handleEmployerApproved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EmployerApprovedPayload)
	if !ok {
		return nil
	}
	return n.notify(ctx, payload.EmployerID, domain.NotificationEmployerApproved,
		"Account approved", "Your employer account has been approved. You can now post jobs.")
}

func (n *NotificationService) notify(ctx context.Context, accountID string, kind domain.NotificationKind, title, body string) error {
	notification := &domain.Notification{
		AccountID: accountID,
		Kind:      kind,
		Title:     title,
		Body:      body,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("failed to persist notification",
			zap.String("account_id", accountID), zap.String("kind", string(kind)), zap.Error(err))
		return err
	}
	n.publishRealtime(ctx, fmt.Sprintf("notify:%s", accountID), notification)
	return nil
}

func (n *NotificationService) publishRealtime(ctx context.Context, channel string, payload any) {
	if n.redis == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("failed to marshal realtime payload", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, channel, data); err != nil {
		n.logger.Warn("failed to publish realtime payload",
			zap.String("channel", channel), zap.Error(err))
	}
}
