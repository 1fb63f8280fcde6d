package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusActive ItemStatus = "active"
	ItemStatusSold   ItemStatus = "sold"
)

// Item is a single listing. Status moves active -> sold exactly once,
// through the conditional update in the order repository.
type Item struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	Title       string          `gorm:"size:120;not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL    *string         `gorm:"size:512"`
	SellerID    uint64          `gorm:"column:seller_id;index;not null"`
	Seller      User            `gorm:"foreignKey:SellerID"`
	CategoryID  uint64          `gorm:"column:category_id;index;not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	Status      ItemStatus      `gorm:"size:16;not null;default:'active'"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
