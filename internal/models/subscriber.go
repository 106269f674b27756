package models

import "time"

// Subscriber represents a newsletter subscriber captured on the site.
// The row mirrors the entry pushed to the mailing-list provider so
// local state survives provider outages.
type Subscriber struct {
	Base
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Source         string     `gorm:"size:100" json:"source,omitempty"` // page or campaign the signup came from
	SubscribedAt   time.Time  `gorm:"not null" json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}
