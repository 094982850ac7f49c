package newslettersubscribe

import (
	"context"
	"database/sql"

	"remedypedia/internal/common/aws"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/zoho"
	"remedypedia/internal/models"
)

type Input struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

type Output struct {
	Success           bool                  `json:"success"`
	Message           string                `json:"message"`
	SubscriberID      string                `json:"subscriberId,omitempty"`
	AlreadySubscribed bool                  `json:"alreadySubscribed"`
	Notifications     []models.Notification `json:"notifications,omitempty"`
}

// EmailSender delivers the confirmation email. *aws.SESClient satisfies it.
type EmailSender interface {
	SendEmail(ctx context.Context, email aws.Email) (string, error)
}

// TopicPublisher announces new subscribers. *aws.SNSClient satisfies it.
type TopicPublisher interface {
	Publish(ctx context.Context, subject, message string, attrs map[string]string) (string, error)
}

// ContactSyncer mirrors subscribers into the CRM. *zoho.CRMClient satisfies it.
type ContactSyncer interface {
	EnsureContact(ctx context.Context, contact *zoho.Contact) (string, bool, error)
}

// ServiceDependencies wires the store and the optional notification channels.
// A nil channel is reported as disabled.
type ServiceDependencies struct {
	Logger logger.Logger
	DB     *sql.DB
	Email  EmailSender
	Topic  TopicPublisher
	CRM    ContactSyncer
}
