package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<unix>,v1=<hex hmac-sha256>" where the MAC
// covers "<t>.<raw body>".
const SignatureHeader = "Stripe-Signature"

const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingSignature = errors.New("billing: missing signature header")
	ErrBadSignature     = errors.New("billing: signature mismatch")
	ErrStaleTimestamp   = errors.New("billing: signature timestamp outside tolerance")
)

// ComputeSignature returns the v1 MAC for a payload at a given time. Used by
// tests and the mock checkout page.
func ComputeSignature(t time.Time, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", t.Unix())
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureValue formats a complete header value.
func SignatureValue(t time.Time, payload []byte, secret string) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), ComputeSignature(t, payload, secret))
}

// VerifySignature checks the header against the payload. Any one matching v1
// entry passes; the timestamp must be within tolerance of now.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	return verifySignatureAt(payload, header, secret, tolerance, time.Now())
}

func verifySignatureAt(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return ErrMissingSignature
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrBadSignature
			}
			ts = n
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return ErrMissingSignature
	}

	at := time.Unix(ts, 0)
	if d := now.Sub(at); d > tolerance || d < -tolerance {
		return ErrStaleTimestamp
	}

	want := ComputeSignature(at, payload, secret)
	for _, got := range sigs {
		if hmac.Equal([]byte(got), []byte(want)) {
			return nil
		}
	}
	return ErrBadSignature
}

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

func ParseEvent(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("billing: parse event: %w", err)
	}
	if e.Type == "" {
		return Event{}, errors.New("billing: event missing type")
	}
	return e, nil
}

// CheckoutSession is the slice of the checkout.session object we act on.
type CheckoutSession struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

func (e Event) CheckoutSession() (CheckoutSession, error) {
	var s CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return CheckoutSession{}, fmt.Errorf("billing: parse checkout session: %w", err)
	}
	return s, nil
}

// SubscriptionObject is the slice of the subscription object we act on.
// CurrentPeriodEnd is a unix timestamp.
type SubscriptionObject struct {
	ID               string            `json:"id"`
	Customer         string            `json:"customer"`
	Status           string            `json:"status"`
	CurrentPeriodEnd int64             `json:"current_period_end"`
	Metadata         map[string]string `json:"metadata"`
}

func (e Event) Subscription() (SubscriptionObject, error) {
	var s SubscriptionObject
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return SubscriptionObject{}, fmt.Errorf("billing: parse subscription: %w", err)
	}
	return s, nil
}

func (s SubscriptionObject) PeriodEnd() time.Time {
	if s.CurrentPeriodEnd <= 0 {
		return time.Time{}
	}
	return time.Unix(s.CurrentPeriodEnd, 0).UTC()
}
