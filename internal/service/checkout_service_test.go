package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/payment"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckout(db *gorm.DB, provider payment.Provider) CheckoutService {
	return NewCheckoutService(
		provider,
		repository.NewItemRepository(db),
		repository.NewOrderRepository(db),
		"http://localhost:8080/checkout/success",
		"http://localhost:8080/checkout/cancel",
	)
}

func TestCreateSession(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "AK-47 Redline", "19.99", model.ItemStatusActive)
	provider := &fakeProvider{}
	svc := newCheckout(db, provider)

	url, err := svc.CreateSession(context.Background(), item.ID, f.buyer)
	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com/session/42", url)

	require.Len(t, provider.sessions, 1)
	in := provider.sessions[0]
	require.Equal(t, "AK-47 Redline", in.Name)
	require.EqualValues(t, 1999, in.AmountMinor)
	require.Contains(t, in.SuccessURL, "item_id=")
	require.Equal(t, "http://localhost:8080/checkout/cancel", in.CancelURL)

	// no local state changes on session creation
	var got model.Item
	require.NoError(t, db.First(&got, item.ID).Error)
	require.Equal(t, model.ItemStatusActive, got.Status)
}

func TestCreateSessionErrors(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "AK-47 Redline", "19.99", model.ItemStatusActive)

	svc := newCheckout(db, &fakeProvider{})
	_, err := svc.CreateSession(context.Background(), item.ID, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.CreateSession(context.Background(), 9999, f.buyer)
	require.ErrorIs(t, err, ErrNotFound)

	failing := newCheckout(db, &fakeProvider{createErr: errors.New("connection refused")})
	_, err = failing.CreateSession(context.Background(), item.ID, f.buyer)
	require.ErrorIs(t, err, ErrProvider)
}

// A sold item can still start a session: the gap is carried from the
// source, the success handler is what refuses to sell it again.
func TestCreateSessionSoldItem(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "sold already", "10.00", model.ItemStatusSold)
	svc := newCheckout(db, &fakeProvider{})

	_, err := svc.CreateSession(context.Background(), item.ID, f.buyer)
	require.NoError(t, err)
}

func TestCompleteSuccess(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "AK-47 Redline", "19.99", model.ItemStatusActive)
	svc := newCheckout(db, &fakeProvider{})
	ctx := context.Background()

	got, order, err := svc.CompleteSuccess(ctx, item.ID, f.buyer)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, order)
	require.Equal(t, model.ItemStatusSold, got.Status)
	require.Equal(t, f.buyer.ID, order.BuyerID)
	require.Equal(t, f.seller.ID, order.SellerID)
	require.Equal(t, item.ID, order.ItemID)
	require.True(t, order.Amount.Equal(decimal.RequireFromString("19.99")))
	require.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestCompleteSuccessReplayIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "AK-47 Redline", "19.99", model.ItemStatusActive)
	svc := newCheckout(db, &fakeProvider{})
	ctx := context.Background()

	_, first, err := svc.CompleteSuccess(ctx, item.ID, f.buyer)
	require.NoError(t, err)
	require.NotNil(t, first)

	got, second, err := svc.CompleteSuccess(ctx, item.ID, f.buyer)
	require.NoError(t, err)
	require.Nil(t, second)
	require.NotNil(t, got)
	require.Equal(t, model.ItemStatusSold, got.Status)

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Where("item_id = ?", item.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCompleteSuccessAnonymous(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	item := seedItem(t, db, f, "AK-47 Redline", "19.99", model.ItemStatusActive)
	svc := newCheckout(db, &fakeProvider{})

	got, order, err := svc.CompleteSuccess(context.Background(), item.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Nil(t, order)

	var dbItem model.Item
	require.NoError(t, db.First(&dbItem, item.ID).Error)
	require.Equal(t, model.ItemStatusActive, dbItem.Status)
}

func TestCompleteSuccessUnknownItem(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newCheckout(db, &fakeProvider{})

	item, order, err := svc.CompleteSuccess(context.Background(), 9999, f.buyer)
	require.NoError(t, err)
	require.Nil(t, item)
	require.Nil(t, order)
}

func TestHandleWebhook(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	provider := &fakeProvider{signature: "good", eventType: payment.EventCheckoutSessionCompleted}
	svc := newCheckout(db, provider)
	ctx := context.Background()

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "good"))

	err := svc.HandleWebhook(ctx, []byte(`{}`), "bad")
	require.ErrorIs(t, err, ErrInvalidSignature)

	// unknown event types are acknowledged too
	provider.eventType = "payment_intent.created"
	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "good"))

	// the completed event is a stub: no orders appear from webhooks
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
