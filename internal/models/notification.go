package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is created once per post and shared by every recipient.
// The recipient list is frozen at creation time; users who subscribe to the
// category later do not retroactively receive it. Deleting a notification
// removes it for all recipients at once.
type Notification struct {
	gorm.Model
	// NotificationID is the public identifier used by the API. The GORM id
	// stays internal.
	NotificationID string `gorm:"uniqueIndex;not null" json:"_id"`
	// PostID enforces at most one notification per post, which makes the
	// fan-out task safe to re-run.
	PostID     uint                        `gorm:"uniqueIndex;not null" json:"-"`
	Title      string                      `gorm:"not null" json:"title"`
	Category   string                      `gorm:"not null" json:"category"`
	Recipients datatypes.JSONSlice[string] `gorm:"not null" json:"emails"`
}
