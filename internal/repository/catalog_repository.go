package repository

import (
	"context"

	"github.com/gamestash/marketplace-backend/internal/model"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	ListGames(ctx context.Context) ([]model.Game, error)
	// ListCategories returns all categories, restricted to one game when
	// gameID is non-zero.
	ListCategories(ctx context.Context, gameID uint64) ([]model.Category, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context, gameID uint64) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Order("name asc")
	if gameID != 0 {
		q = q.Where("game_id = ?", gameID)
	}
	var categories []model.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
