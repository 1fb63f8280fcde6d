package repository

import (
	"context"
	"errors"

	"github.com/gamestash/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

// ErrItemNotActive is returned by CreateForSale when the item was no
// longer active at write time (already sold by an earlier call).
var ErrItemNotActive = errors.New("item not active")

type OrderRepository interface {
	// CreateForSale marks the item sold and records the order as one
	// transaction. The status update is conditional on the item still
	// being active; when it matches no row, no order is written and
	// ErrItemNotActive is returned. This guard is the only thing keeping
	// an item from being sold twice.
	CreateForSale(ctx context.Context, item *model.Item, buyerID uint64) (*model.Order, error)
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateForSale(ctx context.Context, item *model.Item, buyerID uint64) (*model.Order, error) {
	order := &model.Order{
		BuyerID:  buyerID,
		SellerID: item.SellerID,
		ItemID:   item.ID,
		Amount:   item.Price,
		Status:   model.OrderStatusCompleted,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Item{}).
			Where("id = ? AND status = ?", item.ID, model.ItemStatusActive).
			Update("status", model.ItemStatusSold)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotActive
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("id desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
