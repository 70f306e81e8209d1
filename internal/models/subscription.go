package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subscription holds the complete category set one user is subscribed to.
// There is at most one live row per email; updates replace the whole set
// rather than merging into it.
type Subscription struct {
	gorm.Model
	Email      string                      `gorm:"uniqueIndex:idx_subscriptions_email_not_deleted,where:deleted_at IS NULL;not null" json:"email"`
	Categories datatypes.JSONSlice[string] `gorm:"not null" json:"subscriptions"`
}
