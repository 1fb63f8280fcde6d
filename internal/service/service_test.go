package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/payment"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Game{},
		&model.Category{},
		&model.Item{},
		&model.Order{},
	))
	return db
}

type fixtures struct {
	seller   *model.User
	buyer    *model.User
	game     *model.Game
	category *model.Category
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		seller: &model.User{Username: "seller", Email: "s@example.com", PasswordHash: "x", IsSeller: true},
		buyer:  &model.User{Username: "buyer", Email: "b@example.com", PasswordHash: "x"},
		game:   &model.Game{Name: "Counter-Strike 2", Slug: "cs2"},
	}
	require.NoError(t, db.Create(f.seller).Error)
	require.NoError(t, db.Create(f.buyer).Error)
	require.NoError(t, db.Create(f.game).Error)
	f.category = &model.Category{Name: "Skins", Slug: "skins", GameID: f.game.ID}
	require.NoError(t, db.Create(f.category).Error)
	return f
}

func seedItem(t *testing.T, db *gorm.DB, f fixtures, title, price string, status model.ItemStatus) *model.Item {
	t.Helper()
	item := &model.Item{
		Title:       title,
		Description: "test item",
		Price:       decimal.RequireFromString(price),
		SellerID:    f.seller.ID,
		CategoryID:  f.category.ID,
		Status:      status,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// fakeProvider records session requests and verifies events against a
// fixed signature, standing in for the Stripe client.
type fakeProvider struct {
	sessions  []payment.SessionInput
	createErr error
	signature string
	eventType string
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, in payment.SessionInput) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	p.sessions = append(p.sessions, in)
	return "https://pay.example.com/session/42", nil
}

func (p *fakeProvider) VerifyEvent(_ []byte, signature string) (payment.Event, error) {
	if signature != p.signature {
		return payment.Event{}, errors.New("signature mismatch")
	}
	return payment.Event{ID: "evt_1", Type: p.eventType}, nil
}
