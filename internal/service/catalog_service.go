package service

import (
	"context"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/repository"
)

type CatalogService interface {
	ListGames(ctx context.Context) ([]model.Game, error)
	ListCategories(ctx context.Context, gameID uint64) ([]model.Category, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListGames(ctx context.Context) ([]model.Game, error) {
	return s.repo.ListGames(ctx)
}

func (s *catalogService) ListCategories(ctx context.Context, gameID uint64) ([]model.Category, error) {
	return s.repo.ListCategories(ctx, gameID)
}
