package domain

import "time"

// NotificationKind enumerates notification categories shown to accounts.
type NotificationKind string

const (
	NotificationJobApproved        NotificationKind = "JOB_APPROVED"
	NotificationJobRejected        NotificationKind = "JOB_REJECTED"
	NotificationApplicationNew     NotificationKind = "APPLICATION_NEW"
	NotificationApplicationUpdated NotificationKind = "APPLICATION_UPDATED"
	NotificationMessageReceived    NotificationKind = "MESSAGE_RECEIVED"
	NotificationEmployerApproved   NotificationKind = "EMPLOYER_APPROVED"
)

// Notification is a persisted in-app notification for a single account.
type Notification struct {
	ID        string
	AccountID string
	Kind      NotificationKind
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
