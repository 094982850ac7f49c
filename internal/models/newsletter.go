// internal/models/newsletter.go
package models

import "time"

// Subscriber statuses.
const (
	SubscriberStatusPending    = "pending"
	SubscriberStatusSubscribed = "subscribed"
)

// Notification delivery statuses.
const (
	NotificationStatusSent     = "sent"
	NotificationStatusFailed   = "failed"
	NotificationStatusDisabled = "disabled"
)

// Subscriber is a newsletter subscription row.
type Subscriber struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Source    string    `json:"source,omitempty" db:"source"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Notification records one outbound message about a subscription.
type Notification struct {
	Channel string `json:"channel"` // "email", "topic", "crm"
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
}
