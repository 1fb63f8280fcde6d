package repository

import (
	"context"
	"errors"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository interface {
	// GetOrCreate returns the user's token, issuing one if none exists.
	GetOrCreate(ctx context.Context, userID uint64) (*model.Token, error)
	// FindUserByKey resolves a token key to its user. A missing token is
	// not an error: it returns (nil, nil) so callers can fall back to an
	// anonymous identity.
	FindUserByKey(ctx context.Context, key string) (*model.User, error)
	DeleteByUser(ctx context.Context, userID uint64) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetOrCreate(ctx context.Context, userID uint64) (*model.Token, error) {
	token := model.Token{
		Key:    uuid.NewString(),
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).
		Where(model.Token{UserID: userID}).
		Attrs(model.Token{Key: token.Key}).
		FirstOrCreate(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindUserByKey(ctx context.Context, key string) (*model.User, error) {
	var token model.Token
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("token_key = ?", key).
		First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token.User, nil
}

func (r *tokenRepository) DeleteByUser(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Token{}).Error
}
