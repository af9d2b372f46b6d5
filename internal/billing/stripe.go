package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeProvider talks to the Stripe REST API directly with form-encoded
// requests. Prices are preconfigured subscription price ids.
type StripeProvider struct {
	SecretKey    string
	PriceMonthly string
	PriceYearly  string
	SuccessURL   string
	CancelURL    string

	HTTP    *http.Client
	BaseURL string
}

func (s StripeProvider) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (Session, error) {
	price, err := s.priceFor(p.Plan)
	if err != nil {
		return Session{}, err
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", price)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", s.SuccessURL)
	form.Set("cancel_url", s.CancelURL)
	form.Set("customer_email", p.Email)
	form.Set("metadata[user_id]", p.UserID)
	form.Set("metadata[plan]", p.Plan)
	form.Set("subscription_data[metadata][user_id]", p.UserID)
	form.Set("allow_promotion_codes", "true")

	base := s.BaseURL
	if base == "" {
		base = stripeAPIBase
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := s.HTTP
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, fmt.Errorf("stripe checkout session: http %d", resp.StatusCode)
	}

	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return Session{}, fmt.Errorf("stripe checkout session: decode: %w", err)
	}
	if sess.URL == "" {
		return Session{}, fmt.Errorf("stripe checkout session: empty url")
	}
	return sess, nil
}

func (s StripeProvider) priceFor(plan string) (string, error) {
	switch plan {
	case "monthly":
		return s.PriceMonthly, nil
	case "yearly":
		return s.PriceYearly, nil
	default:
		return "", fmt.Errorf("unknown plan %q", plan)
	}
}
