package billing

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	now := time.Now()
	header := SignatureValue(now, payload, testSecret)

	if err := verifySignatureAt(payload, header, testSecret, time.Minute, now); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"amount":100}`)
	now := time.Now()
	header := SignatureValue(now, payload, testSecret)

	err := verifySignatureAt([]byte(`{"amount":999}`), header, testSecret, time.Minute, now)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err=%v want ErrBadSignature", err)
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Now()
	header := SignatureValue(now, payload, "whsec_other")

	err := verifySignatureAt(payload, header, testSecret, time.Minute, now)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err=%v want ErrBadSignature", err)
	}
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	signed := time.Now().Add(-10 * time.Minute)
	header := SignatureValue(signed, payload, testSecret)

	err := verifySignatureAt(payload, header, testSecret, time.Minute, time.Now())
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Fatalf("err=%v want ErrStaleTimestamp", err)
	}
}

func TestVerifySignature_MissingHeader(t *testing.T) {
	err := verifySignatureAt([]byte(`{}`), "", testSecret, time.Minute, time.Now())
	if !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("err=%v want ErrMissingSignature", err)
	}
}

func TestVerifySignature_SecondV1Matches(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Now()
	header := SignatureValue(now, payload, "whsec_rotated") + ",v1=" + ComputeSignature(now, payload, testSecret)

	if err := verifySignatureAt(payload, header, testSecret, time.Minute, now); err != nil {
		t.Fatalf("verify with rotated keys: %v", err)
	}
}

func TestParseEvent_CheckoutSession(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"customer": "cus_1",
			"subscription": "sub_1",
			"metadata": {"user_id": "u1", "plan": "monthly"}
		}}
	}`)

	evt, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if evt.Type != EventCheckoutCompleted {
		t.Fatalf("type=%q", evt.Type)
	}
	sess, err := evt.CheckoutSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if sess.Customer != "cus_1" || sess.Subscription != "sub_1" {
		t.Fatalf("session=%+v", sess)
	}
	if sess.Metadata["user_id"] != "u1" || sess.Metadata["plan"] != "monthly" {
		t.Fatalf("metadata=%v", sess.Metadata)
	}
}

func TestParseEvent_SubscriptionPeriodEnd(t *testing.T) {
	payload := []byte(`{
		"id": "evt_2",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"customer": "cus_1",
			"status": "past_due",
			"current_period_end": 1767225600
		}}
	}`)

	evt, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sub, err := evt.Subscription()
	if err != nil {
		t.Fatalf("subscription: %v", err)
	}
	if sub.Status != "past_due" {
		t.Fatalf("status=%q", sub.Status)
	}
	want := time.Unix(1767225600, 0).UTC()
	if !sub.PeriodEnd().Equal(want) {
		t.Fatalf("periodEnd=%v want %v", sub.PeriodEnd(), want)
	}
}

func TestParseEvent_MissingType(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"id":"evt"}`)); err == nil {
		t.Fatalf("expected error for missing type")
	}
}
