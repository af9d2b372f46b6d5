package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tradeflex/internal/billing"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

var ErrWebhookRejected = errors.New("webhook rejected")

type CheckoutService struct {
	Provider billing.Provider
	Logger   *zap.Logger
}

func (s *CheckoutService) CreateSession(ctx context.Context, userID, email, plan string) (billing.Session, error) {
	if s == nil || s.Provider == nil {
		return billing.Session{}, ErrNotFound
	}
	plan = strings.ToLower(strings.TrimSpace(plan))
	if plan != models.PlanMonthly && plan != models.PlanYearly {
		return billing.Session{}, ErrInvalid
	}
	return s.Provider.CreateCheckoutSession(ctx, billing.CheckoutParams{
		UserID: userID,
		Email:  email,
		Plan:   plan,
	})
}

// WebhookService processes signed payment events. With no secret configured
// every delivery is rejected; there is no unsigned path.
type WebhookService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Secret    string
	Tolerance time.Duration
}

func (s *WebhookService) Process(ctx context.Context, payload []byte, sigHeader string) error {
	if s == nil || s.Repo == nil {
		return ErrWebhookRejected
	}
	if strings.TrimSpace(s.Secret) == "" {
		if s.Logger != nil {
			s.Logger.Error("webhook secret not configured, rejecting delivery")
		}
		return ErrWebhookRejected
	}
	if err := billing.VerifySignature(payload, sigHeader, s.Secret, s.Tolerance); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("webhook signature verification failed", zap.Error(err))
		}
		return ErrWebhookRejected
	}

	event, err := billing.ParseEvent(payload)
	if err != nil {
		return err
	}

	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, event)
	case billing.EventSubscriptionUpdated, billing.EventSubscriptionDeleted:
		return s.handleSubscriptionChange(ctx, event)
	default:
		if s.Logger != nil {
			s.Logger.Debug("ignoring webhook event", zap.String("type", event.Type))
		}
		return nil
	}
}

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, event billing.Event) error {
	session, err := event.CheckoutSession()
	if err != nil {
		return err
	}
	userID := strings.TrimSpace(session.Metadata["user_id"])
	if userID == "" {
		if s.Logger != nil {
			s.Logger.Warn("checkout completed without user_id metadata",
				zap.String("session_id", session.ID))
		}
		return nil
	}

	plan := strings.ToLower(strings.TrimSpace(session.Metadata["plan"]))
	if plan != models.PlanYearly {
		plan = models.PlanMonthly
	}
	periodEnd := time.Now().UTC().AddDate(0, 1, 0)
	if plan == models.PlanYearly {
		periodEnd = time.Now().UTC().AddDate(1, 0, 0)
	}

	item := &models.Subscription{
		UserID:           userID,
		CustomerID:       session.Customer,
		SubscriptionID:   session.Subscription,
		Status:           models.SubscriptionStatusActive,
		Plan:             plan,
		CurrentPeriodEnd: periodEnd,
	}
	if err := s.Repo.UpsertSubscription(ctx, item); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("subscription activated",
			zap.String("user_id", userID),
			zap.String("plan", plan))
	}
	return nil
}

func (s *WebhookService) handleSubscriptionChange(ctx context.Context, event billing.Event) error {
	sub, err := event.Subscription()
	if err != nil {
		return err
	}

	userID := strings.TrimSpace(sub.Metadata["user_id"])
	if userID == "" {
		// Metadata is not always carried on the subscription object; fall
		// back to the customer id we stored at checkout.
		existing, err := s.Repo.GetSubscriptionByCustomerID(ctx, sub.Customer)
		if err != nil {
			return err
		}
		if existing == nil {
			if s.Logger != nil {
				s.Logger.Warn("subscription event for unknown customer",
					zap.String("customer_id", sub.Customer))
			}
			return nil
		}
		userID = existing.UserID
	}

	status := strings.ToLower(strings.TrimSpace(sub.Status))
	if event.Type == billing.EventSubscriptionDeleted || status == "" {
		status = models.SubscriptionStatusCanceled
	}
	var periodEnd *time.Time
	if end := sub.PeriodEnd(); !end.IsZero() {
		periodEnd = &end
	}

	if err := s.Repo.UpdateSubscriptionStatus(ctx, userID, status, periodEnd); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("subscription status updated",
			zap.String("user_id", userID),
			zap.String("status", status))
	}
	return nil
}

// SubscriptionSweep expires lapsed rows so entitlement checks never see a
// stale active status.
type SubscriptionSweep struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *SubscriptionSweep) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	n, err := s.Repo.ExpireLapsedSubscriptions(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if n > 0 && s.Logger != nil {
		s.Logger.Info("expired lapsed subscriptions", zap.Int64("count", n))
	}
	return nil
}

// NotificationPurge drops read notifications past the retention window.
type NotificationPurge struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Retention time.Duration
}

func (s *NotificationPurge) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	retention := s.Retention
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	n, err := s.Repo.PurgeReadNotifications(ctx, time.Now().UTC().Add(-retention))
	if err != nil {
		return err
	}
	if n > 0 && s.Logger != nil {
		s.Logger.Info("purged read notifications", zap.Int64("count", n))
	}
	return nil
}
