package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"meridian/internal/clients/audience"
	apperrors "meridian/internal/errors"
	"meridian/internal/logger"
	"meridian/internal/mail"
	"meridian/internal/metrics"
	"meridian/internal/models"
	"meridian/internal/pagination"
)

// newsletterService handles newsletter subscriptions. Each signup is
// stored locally, pushed to the mailing-list provider, and confirmed
// with a welcome email.
type newsletterService struct {
	db       *gorm.DB
	audience *audience.Client
	sender   mail.Sender
	baseURL  string
}

// NewNewsletterService creates a new NewsletterServicer.
func NewNewsletterService(db *gorm.DB, audienceClient *audience.Client, sender mail.Sender, baseURL string) NewsletterServicer {
	return &newsletterService{db: db, audience: audienceClient, sender: sender, baseURL: baseURL}
}

// Subscribe records the signup and fans out to the mailing-list
// provider and the welcome email in parallel. If either outbound call
// fails the subscription fails; a resubmit is safe because both sides
// treat repeats as no-ops.
func (s *newsletterService) Subscribe(ctx context.Context, email, source string) (*models.Subscriber, error) {
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	sub, err := s.upsertSubscriber(email, source)
	if err != nil {
		metrics.RecordNewsletterSubscription(false)
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.audience.Subscribe(gctx, email, source)
	})
	g.Go(func() error {
		subject, htmlBody, textBody := mail.WelcomeEmail(s.baseURL)
		return s.sender.Send(gctx, email, subject, htmlBody, textBody)
	})
	if err := g.Wait(); err != nil {
		metrics.RecordNewsletterSubscription(false)
		return nil, apperrors.Wrap(apperrors.ErrSubscribeFailed, err)
	}

	metrics.RecordNewsletterSubscription(true)
	return sub, nil
}

// Unsubscribe marks the local row and removes the address from the
// provider list. A provider-side miss is fine; local state wins.
func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	var sub models.Subscriber
	if err := s.db.Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubscriberNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	if err := s.db.Model(&sub).Update("unsubscribed_at", now).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.audience.Unsubscribe(ctx, email); err != nil {
		// Local state already reflects the unsubscribe; the provider
		// sync is retried out of band.
		logger.Get().Errorw("provider unsubscribe failed", "error", err, "email", email)
	}
	return nil
}

// ListSubscribers lists subscribers for the admin, newest first.
func (s *newsletterService) ListSubscribers(page pagination.PageRequest) (*pagination.PageResponse[models.Subscriber], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Subscriber{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var subs []models.Subscriber
	if err := base.Order("subscribed_at DESC").Scopes(pagination.Paginate(page)).Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(subs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// upsertSubscriber creates the row, or revives it when the address
// subscribed before (including after an unsubscribe).
func (s *newsletterService) upsertSubscriber(email, source string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := s.db.Where("email = ?", email).First(&sub).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"subscribed_at":   time.Now(),
			"unsubscribed_at": nil,
		}
		if source != "" {
			updates["source"] = source
		}
		if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		sub.UnsubscribedAt = nil
		return &sub, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.Subscriber{Email: email, Source: source, SubscribedAt: time.Now()}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &sub, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
