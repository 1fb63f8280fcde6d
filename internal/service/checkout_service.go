package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/payment"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minorUnitsPerUnit = decimal.NewFromInt(100)

type CheckoutService interface {
	// CreateSession builds a provider checkout session for the item and
	// returns the provider URL the buyer must be redirected to.
	CreateSession(ctx context.Context, itemID uint64, buyer *model.User) (string, error)
	// HandleWebhook verifies a provider event. Verified events are
	// acknowledged whatever their type; order fulfillment stays on the
	// success redirect for now.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// CompleteSuccess finalizes a purchase after the provider redirects
	// the buyer back. The returned item may be nil (unknown item) and
	// the returned order is nil whenever no purchase was recorded:
	// anonymous caller, or the item was not active anymore. Replays are
	// no-ops because the sold status can only be written once.
	CompleteSuccess(ctx context.Context, itemID uint64, buyer *model.User) (*model.Item, *model.Order, error)
}

type checkoutService struct {
	provider   payment.Provider
	items      repository.ItemRepository
	orders     repository.OrderRepository
	successURL string
	cancelURL  string
}

func NewCheckoutService(provider payment.Provider, items repository.ItemRepository, orders repository.OrderRepository, successURL, cancelURL string) CheckoutService {
	return &checkoutService{
		provider:   provider,
		items:      items,
		orders:     orders,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (s *checkoutService) CreateSession(ctx context.Context, itemID uint64, buyer *model.User) (string, error) {
	if buyer == nil {
		return "", ErrUnauthorized
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, payment.SessionInput{
		Name:        item.Title,
		AmountMinor: item.Price.Mul(minorUnitsPerUnit).IntPart(),
		SuccessURL:  fmt.Sprintf("%s?item_id=%d", s.successURL, item.ID),
		CancelURL:   s.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return url, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if _, err := s.provider.VerifyEvent(payload, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	// checkout.session.completed is received but not acted on yet;
	// fulfillment happens on the success redirect. Every verified event
	// is acknowledged regardless of type.
	return nil
}

func (s *checkoutService) CompleteSuccess(ctx context.Context, itemID uint64, buyer *model.User) (*model.Item, *model.Order, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if buyer == nil || item.Status != model.ItemStatusActive {
		return item, nil, nil
	}

	order, err := s.orders.CreateForSale(ctx, item, buyer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotActive) {
			// lost the race or a replayed redirect; the item is sold
			item.Status = model.ItemStatusSold
			return item, nil, nil
		}
		return nil, nil, err
	}
	item.Status = model.ItemStatusSold
	return item, order, nil
}
