package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Outbox event status constants
const (
	OutboxStatusPending   = "pending"
	OutboxStatusDelivered = "delivered"
)

// Event type constants
const (
	EventPostCreated = "post.created"
)

// OutboxEvent records a side effect owed to a committed write. It is inserted
// in the same transaction as the post, so a crash between the post write and
// the notification fan-out cannot silently drop the notification: the sweeper
// re-enqueues any event still pending.
type OutboxEvent struct {
	gorm.Model
	EventID     string         `gorm:"uniqueIndex;not null"`
	EventType   string         `gorm:"not null;index"`
	PostID      uint           `gorm:"not null;index"`
	Payload     datatypes.JSON `gorm:"not null"`
	Status      string         `gorm:"not null;default:'pending';index"`
	DeliveredAt *time.Time
}
