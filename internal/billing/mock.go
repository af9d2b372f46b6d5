package billing

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// MockProvider serves local development: checkout "succeeds" by visiting a
// local page that posts the synthetic webhook back to us.
type MockProvider struct {
	BaseURL string
}

func (m MockProvider) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (Session, error) {
	_ = ctx
	base := strings.TrimRight(m.BaseURL, "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	id := "cs_mock_" + uuid.NewString()[:8]
	q := url.Values{}
	q.Set("session_id", id)
	q.Set("plan", p.Plan)
	q.Set("user_id", p.UserID)
	return Session{
		ID:  id,
		URL: fmt.Sprintf("%s/mock-checkout?%s", base, q.Encode()),
	}, nil
}
