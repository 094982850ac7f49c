// Package newslettersubscribe records newsletter sign-ups and notifies downstream channels.
package newslettersubscribe

import (
	"context"
	"fmt"
	"time"

	"remedypedia/internal/common/aws"
	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/metrics"
	"remedypedia/internal/common/zoho"
	"remedypedia/internal/models"

	"github.com/google/uuid"
)

const insertSubscriber = `INSERT INTO newsletter_subscribers (id, email, source, status, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING`

type Service struct {
	config *Config
	deps   ServiceDependencies
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{
		config: config,
		deps:   deps,
		logger: deps.Logger.With(map[string]interface{}{"component": "newsletter-subscribe"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Execute stores the subscription. Notifications are best effort and never fail the call.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	in, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	subscriber := models.Subscriber{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Source:    in.Source,
		Status:    models.SubscriberStatusSubscribed,
		CreatedAt: s.now(),
	}

	inserted, err := s.insert(ctx, subscriber)
	if err != nil {
		s.logger.Error("failed to store subscriber", map[string]interface{}{
			"email": subscriber.Email,
			"error": err,
		})
		return nil, errors.NewDatabaseError("insert newsletter subscriber", err)
	}

	if !inserted {
		s.logger.Info("email already subscribed", map[string]interface{}{
			"email": subscriber.Email,
		})
		return &Output{
			Success:           true,
			Message:           "Already subscribed",
			AlreadySubscribed: true,
		}, nil
	}

	s.logger.Info("subscriber stored", map[string]interface{}{
		"subscriberId": subscriber.ID,
		"source":       subscriber.Source,
	})

	return &Output{
		Success:       true,
		Message:       "Subscribed successfully",
		SubscriberID:  subscriber.ID,
		Notifications: s.notify(ctx, subscriber),
	}, nil
}

func (s *Service) insert(ctx context.Context, sub models.Subscriber) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.deps.DB.ExecContext(ctx, insertSubscriber,
		sub.ID, sub.Email, sub.Source, sub.Status, sub.CreatedAt)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Service) notify(ctx context.Context, sub models.Subscriber) []models.Notification {
	ctx, cancel := context.WithTimeout(ctx, s.config.NotificationTimeout)
	defer cancel()

	channels := []struct {
		name    string
		enabled bool
		send    func() (string, error)
	}{
		{ChannelEmail, s.deps.Email != nil, func() (string, error) {
			return s.deps.Email.SendEmail(ctx, s.confirmationEmail(sub))
		}},
		{ChannelTopic, s.deps.Topic != nil, func() (string, error) {
			return s.deps.Topic.Publish(ctx, "newsletter.subscribed", sub.Email, map[string]string{
				"source":       sub.Source,
				"subscriberId": sub.ID,
			})
		}},
		{ChannelCRM, s.deps.CRM != nil, func() (string, error) {
			id, _, err := s.deps.CRM.EnsureContact(ctx, zoho.NewsletterContact(sub.Email, sub.Source))
			return id, err
		}},
	}

	notifications := make([]models.Notification, 0, len(channels))
	for _, ch := range channels {
		n := models.Notification{Channel: ch.name, Status: models.NotificationStatusDisabled}
		if ch.enabled {
			id, err := ch.send()
			if err != nil {
				n.Status = models.NotificationStatusFailed
				s.logger.Warn("notification failed", map[string]interface{}{
					"subscriberId": sub.ID,
					"error":        errors.NewNotificationSendFailedError(ch.name, err),
				})
			} else {
				n.Status = models.NotificationStatusSent
				n.ID = id
			}
		}
		metrics.NotificationsSent.WithLabelValues(n.Channel, n.Status).Inc()
		notifications = append(notifications, n)
	}
	return notifications
}

func (s *Service) confirmationEmail(sub models.Subscriber) aws.Email {
	return aws.Email{
		To:      sub.Email,
		Subject: s.config.ConfirmationSubject,
		TextBody: fmt.Sprintf(
			"Thanks for subscribing to Remedypedia.\n\nYou will receive new articles about natural remedies at %s.\n",
			sub.Email,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Thanks for subscribing to Remedypedia.</p><p>You will receive new articles about natural remedies at <strong>%s</strong>.</p>",
			sub.Email,
		),
	}
}
