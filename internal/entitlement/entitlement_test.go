package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeflex/internal/models"
)

type fakeStore struct {
	sub       *models.Subscription
	subErr    error
	referrals int64
	refErr    error

	subCalls int
}

func (f *fakeStore) GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	f.subCalls++
	return f.sub, f.subErr
}

func (f *fakeStore) CountReferralsByReferrer(ctx context.Context, referrerID string) (int64, error) {
	return f.referrals, f.refErr
}

func activeSub(end time.Time) *models.Subscription {
	return &models.Subscription{
		UserID:           "u1",
		Status:           models.SubscriptionStatusActive,
		Plan:             models.PlanMonthly,
		CurrentPeriodEnd: end,
	}
}

func TestResolve_AdminShortCircuits(t *testing.T) {
	store := &fakeStore{sub: activeSub(time.Now().Add(-time.Hour))} // expired
	r := NewResolver([]string{"Alice@example.com"}, store, 3)

	status, err := r.Resolve(context.Background(), "u1", "alice@example.com")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !status.IsPro() || status.Source != SourceAdmin {
		t.Fatalf("status=%+v want admin pro", status)
	}
	if store.subCalls != 0 {
		t.Fatalf("admin check must not hit the store")
	}
}

func TestResolve_ActiveSubscription(t *testing.T) {
	end := time.Now().Add(24 * time.Hour)
	r := NewResolver(nil, &fakeStore{sub: activeSub(end)}, 3)

	status, err := r.Resolve(context.Background(), "u1", "bob@example.com")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !status.IsPro() || status.Source != SourceSubscription {
		t.Fatalf("status=%+v want subscription pro", status)
	}
	if status.ExpiresAt == nil || !status.ExpiresAt.Equal(end) {
		t.Fatalf("expiresAt=%v want %v", status.ExpiresAt, end)
	}
}

func TestResolve_ExpiredSubscriptionFallsThrough(t *testing.T) {
	r := NewResolver(nil, &fakeStore{sub: activeSub(time.Now().Add(-time.Minute))}, 3)

	status, err := r.Resolve(context.Background(), "u1", "bob@example.com")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if status.IsPro() {
		t.Fatalf("expired subscription must not grant pro")
	}
}

func TestResolve_ReferralThreshold(t *testing.T) {
	r := NewResolver(nil, &fakeStore{referrals: 3}, 3)
	status, err := r.Resolve(context.Background(), "u1", "bob@example.com")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !status.IsPro() || status.Source != SourceReferral {
		t.Fatalf("status=%+v want referral pro", status)
	}

	r = NewResolver(nil, &fakeStore{referrals: 2}, 3)
	status, _ = r.Resolve(context.Background(), "u1", "bob@example.com")
	if status.IsPro() {
		t.Fatalf("2 referrals must stay free")
	}
}

func TestResolve_DefaultFree(t *testing.T) {
	r := NewResolver([]string{"admin@example.com"}, &fakeStore{}, 3)
	status, err := r.Resolve(context.Background(), "u1", "bob@example.com")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if status.IsPro() || status.Plan != models.PlanFree {
		t.Fatalf("status=%+v want free", status)
	}
}

func TestResolve_StoreErrorDegradesToFree(t *testing.T) {
	r := NewResolver(nil, &fakeStore{subErr: errors.New("db down")}, 3)
	status, err := r.Resolve(context.Background(), "u1", "bob@example.com")
	if err == nil {
		t.Fatalf("expected error")
	}
	if status.IsPro() {
		t.Fatalf("errors must degrade to free, not escalate")
	}
}
