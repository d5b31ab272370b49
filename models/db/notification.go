package dbmodels

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an outbox row. Rows announcing a form change commit in the
// same transaction as that change; delivery is attempted right after commit
// and retried by the worker while attempts remain.
type Notification struct {
	BaseModel
	FormID         string `gorm:"type:varchar(36);index"`
	Recipient      string `gorm:"type:varchar(255)"`
	Subject        string `gorm:"type:varchar(255)"`
	Body           string
	HTML           bool
	AttachmentKeys []string           `gorm:"serializer:json"`
	Status         NotificationStatus `gorm:"type:varchar(20);default:'pending';index"`
	Attempts       int
	LastError      string
	SentAt         *time.Time
}
