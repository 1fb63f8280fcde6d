package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemService interface {
	// Create lists a new item for the seller. Seller and status are
	// derived, never taken from the payload.
	Create(ctx context.Context, seller *model.User, title, description string, price decimal.Decimal, categoryID uint64, imageURL *string) (*model.Item, error)
	Get(ctx context.Context, id uint64) (*model.Item, error)
	ListActive(ctx context.Context, gameSlug string) ([]model.Item, error)
	ListMine(ctx context.Context, sellerID uint64) ([]model.Item, error)
	ListPurchases(ctx context.Context, buyerID uint64) ([]model.Item, error)
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) Create(ctx context.Context, seller *model.User, title, description string, price decimal.Decimal, categoryID uint64, imageURL *string) (*model.Item, error) {
	if seller == nil {
		return nil, ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || len(title) > 120 {
		return nil, errors.New("invalid title")
	}
	if description == "" {
		return nil, errors.New("invalid description")
	}
	if !price.IsPositive() {
		return nil, errors.New("price must be positive")
	}
	if categoryID == 0 {
		return nil, errors.New("category is required")
	}
	if imageURL != nil && strings.HasPrefix(strings.TrimSpace(*imageURL), "data:") {
		return nil, errors.New("imageUrl must be a URL, not data URI")
	}

	item := &model.Item{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		SellerID:    seller.ID,
		CategoryID:  categoryID,
		Status:      model.ItemStatusActive,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	// reload with seller/category/game attached for the response
	return s.Get(ctx, item.ID)
}

func (s *itemService) Get(ctx context.Context, id uint64) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListActive(ctx context.Context, gameSlug string) ([]model.Item, error) {
	return s.repo.ListActive(ctx, strings.TrimSpace(gameSlug))
}

func (s *itemService) ListMine(ctx context.Context, sellerID uint64) ([]model.Item, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *itemService) ListPurchases(ctx context.Context, buyerID uint64) ([]model.Item, error) {
	return s.repo.ListPurchasedBy(ctx, buyerID)
}
