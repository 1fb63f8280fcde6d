package repository

import (
	"context"

	"github.com/gamestash/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	// ListActive returns items still for sale, newest first, optionally
	// restricted to one game by slug (case-insensitive exact match).
	ListActive(ctx context.Context, gameSlug string) ([]model.Item, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.Item, error)
	// ListPurchasedBy returns the items referenced by any order with the
	// given buyer.
	ListPurchasedBy(ctx context.Context, buyerID uint64) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func withItemRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Seller").Preload("Category").Preload("Category.Game")
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := withItemRelations(r.db.WithContext(ctx)).
		First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListActive(ctx context.Context, gameSlug string) ([]model.Item, error) {
	q := withItemRelations(r.db.WithContext(ctx)).
		Where("status = ?", model.ItemStatusActive).
		Order("created_at desc")
	if gameSlug != "" {
		gameCategories := r.db.Table("categories").
			Select("categories.id").
			Joins("JOIN games ON games.id = categories.game_id").
			Where("LOWER(games.slug) = LOWER(?)", gameSlug)
		q = q.Where("category_id IN (?)", gameCategories)
	}
	var items []model.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Item, error) {
	var items []model.Item
	if err := withItemRelations(r.db.WithContext(ctx)).
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListPurchasedBy(ctx context.Context, buyerID uint64) ([]model.Item, error) {
	var itemIDs []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("buyer_id = ?", buyerID).
		Pluck("item_id", &itemIDs).Error; err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := withItemRelations(r.db.WithContext(ctx)).
		Where("id IN ?", itemIDs).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
