package entitlement

import (
	"context"
	"strings"
	"time"

	"tradeflex/internal/models"
)

type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Source records which check granted Pro; useful in responses and logs.
type Source string

const (
	SourceNone         Source = ""
	SourceAdmin        Source = "admin"
	SourceSubscription Source = "subscription"
	SourceReferral     Source = "referral"
)

type Status struct {
	Tier      Tier       `json:"tier"`
	Plan      string     `json:"plan"`
	Source    Source     `json:"source,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (s Status) IsPro() bool {
	return s.Tier == TierPro
}

// Store is the slice of the repository the resolver needs.
type Store interface {
	GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	CountReferralsByReferrer(ctx context.Context, referrerID string) (int64, error)
}

// Resolver derives the Pro/Free tier from three sources, first match wins:
// admin allow-list, active subscription, referral threshold. The sources are
// checked in that order, so an admin with a lapsed subscription stays Pro.
type Resolver struct {
	Store     Store
	Threshold int

	admins map[string]struct{}
	now    func() time.Time
}

func NewResolver(adminEmails []string, store Store, threshold int) *Resolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			admins[e] = struct{}{}
		}
	}
	if threshold <= 0 {
		threshold = 3
	}
	return &Resolver{
		Store:     store,
		Threshold: threshold,
		admins:    admins,
		now:       time.Now,
	}
}

func free() Status {
	return Status{Tier: TierFree, Plan: models.PlanFree}
}

// Resolve never escalates: on store errors it reports the Free tier alongside
// the error so callers can log and degrade.
func (r *Resolver) Resolve(ctx context.Context, userID, email string) (Status, error) {
	if r == nil {
		return free(), nil
	}

	if r.IsAdmin(email) {
		return Status{Tier: TierPro, Plan: models.PlanYearly, Source: SourceAdmin}, nil
	}

	if r.Store == nil || userID == "" {
		return free(), nil
	}

	sub, err := r.Store.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		return free(), err
	}
	if sub != nil && sub.Status == models.SubscriptionStatusActive && sub.CurrentPeriodEnd.After(r.now()) {
		end := sub.CurrentPeriodEnd
		return Status{
			Tier:      TierPro,
			Plan:      sub.Plan,
			Source:    SourceSubscription,
			ExpiresAt: &end,
		}, nil
	}

	count, err := r.Store.CountReferralsByReferrer(ctx, userID)
	if err != nil {
		return free(), err
	}
	if count >= int64(r.Threshold) {
		return Status{Tier: TierPro, Plan: models.PlanMonthly, Source: SourceReferral}, nil
	}

	return free(), nil
}

func (r *Resolver) IsAdmin(email string) bool {
	if r == nil || email == "" {
		return false
	}
	_, ok := r.admins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
