package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tradeflex/internal/billing"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

// fakeBillingRepo embeds the interface so only the methods the webhook path
// touches need bodies.
type fakeBillingRepo struct {
	repository.Repository

	upserted   *models.Subscription
	byCustomer map[string]*models.Subscription
	updates    []statusUpdate
}

type statusUpdate struct {
	userID    string
	status    string
	periodEnd *time.Time
}

func (f *fakeBillingRepo) UpsertSubscription(ctx context.Context, item *models.Subscription) error {
	f.upserted = item
	return nil
}

func (f *fakeBillingRepo) GetSubscriptionByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeBillingRepo) UpdateSubscriptionStatus(ctx context.Context, userID, status string, periodEnd *time.Time) error {
	f.updates = append(f.updates, statusUpdate{userID: userID, status: status, periodEnd: periodEnd})
	return nil
}

func signedPayload(t *testing.T, secret string, event map[string]any) (payload []byte, header string) {
	t.Helper()
	b, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b, billing.SignatureValue(time.Now(), b, secret)
}

func TestWebhookProcess_CheckoutCompletedActivates(t *testing.T) {
	repo := &fakeBillingRepo{}
	svc := &WebhookService{Repo: repo, Secret: "whsec_test", Tolerance: time.Minute}

	payload, header := signedPayload(t, "whsec_test", map[string]any{
		"id":   "evt_1",
		"type": "checkout.session.completed",
		"data": map[string]any{"object": map[string]any{
			"id":           "cs_1",
			"customer":     "cus_1",
			"subscription": "sub_1",
			"metadata":     map[string]string{"user_id": "u1", "plan": "yearly"},
		}},
	})

	if err := svc.Process(context.Background(), payload, header); err != nil {
		t.Fatalf("process: %v", err)
	}
	if repo.upserted == nil {
		t.Fatalf("no subscription upserted")
	}
	got := repo.upserted
	if got.UserID != "u1" || got.Plan != models.PlanYearly || got.Status != models.SubscriptionStatusActive {
		t.Fatalf("upserted=%+v", got)
	}
	if got.CustomerID != "cus_1" || got.SubscriptionID != "sub_1" {
		t.Fatalf("ids=%+v", got)
	}
	if !got.CurrentPeriodEnd.After(time.Now().AddDate(0, 11, 0)) {
		t.Fatalf("yearly period end too close: %v", got.CurrentPeriodEnd)
	}
}

func TestWebhookProcess_NoSecretRejects(t *testing.T) {
	svc := &WebhookService{Repo: &fakeBillingRepo{}, Secret: ""}
	payload, header := signedPayload(t, "whsec_test", map[string]any{"id": "e", "type": "checkout.session.completed"})

	err := svc.Process(context.Background(), payload, header)
	if !errors.Is(err, ErrWebhookRejected) {
		t.Fatalf("err=%v want ErrWebhookRejected", err)
	}
}

func TestWebhookProcess_BadSignatureRejects(t *testing.T) {
	repo := &fakeBillingRepo{}
	svc := &WebhookService{Repo: repo, Secret: "whsec_test", Tolerance: time.Minute}
	payload, header := signedPayload(t, "whsec_other", map[string]any{"id": "e", "type": "checkout.session.completed"})

	err := svc.Process(context.Background(), payload, header)
	if !errors.Is(err, ErrWebhookRejected) {
		t.Fatalf("err=%v want ErrWebhookRejected", err)
	}
	if repo.upserted != nil {
		t.Fatalf("rejected delivery must not write")
	}
}

func TestWebhookProcess_DeletedFallsBackToCustomerLookup(t *testing.T) {
	repo := &fakeBillingRepo{
		byCustomer: map[string]*models.Subscription{
			"cus_9": {UserID: "u9", CustomerID: "cus_9"},
		},
	}
	svc := &WebhookService{Repo: repo, Secret: "whsec_test", Tolerance: time.Minute}

	payload, header := signedPayload(t, "whsec_test", map[string]any{
		"id":   "evt_2",
		"type": "customer.subscription.deleted",
		"data": map[string]any{"object": map[string]any{
			"id":       "sub_9",
			"customer": "cus_9",
			"status":   "canceled",
		}},
	})

	if err := svc.Process(context.Background(), payload, header); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("updates=%d", len(repo.updates))
	}
	if repo.updates[0].userID != "u9" || repo.updates[0].status != models.SubscriptionStatusCanceled {
		t.Fatalf("update=%+v", repo.updates[0])
	}
}

func TestWebhookProcess_UnknownEventIgnored(t *testing.T) {
	repo := &fakeBillingRepo{}
	svc := &WebhookService{Repo: repo, Secret: "whsec_test", Tolerance: time.Minute}
	payload, header := signedPayload(t, "whsec_test", map[string]any{"id": "e", "type": "invoice.paid"})

	if err := svc.Process(context.Background(), payload, header); err != nil {
		t.Fatalf("process: %v", err)
	}
	if repo.upserted != nil || len(repo.updates) != 0 {
		t.Fatalf("ignored event must not write")
	}
}
