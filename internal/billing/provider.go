package billing

import "context"

const (
	ModeStripe = "stripe"
	ModeMock   = "mock"
)

type CheckoutParams struct {
	UserID string
	Email  string
	Plan   string
}

type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates hosted checkout sessions. The implementation is picked
// once at wiring time from config; handlers never branch on the mode.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (Session, error)
}
