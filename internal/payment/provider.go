package payment

import "context"

// SessionInput describes the single line item of a checkout session.
// AmountMinor is in minor currency units (cents).
type SessionInput struct {
	Name        string
	AmountMinor int64
	SuccessURL  string
	CancelURL   string
}

// Event is a signature-verified provider callback.
type Event struct {
	ID   string
	Type string
}

const EventCheckoutSessionCompleted = "checkout.session.completed"

// Provider is the payment processor the checkout service talks to. Card
// handling and webhook signing live entirely on the provider's side; we
// only create sessions and verify the events it sends back.
type Provider interface {
	// CreateCheckoutSession registers a pending payment with the
	// provider and returns the URL the buyer must be redirected to.
	CreateCheckoutSession(ctx context.Context, in SessionInput) (string, error)
	// VerifyEvent checks the webhook payload against its signature
	// header and decodes the event.
	VerifyEvent(payload []byte, signature string) (Event, error)
}
