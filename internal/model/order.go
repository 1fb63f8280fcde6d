package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const OrderStatusCompleted OrderStatus = "completed"

// Order records one completed purchase. Amount is copied from the item
// price at purchase time; rows are never updated afterwards.
type Order struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	BuyerID   uint64          `gorm:"column:buyer_id;index;not null"`
	Buyer     User            `gorm:"foreignKey:BuyerID"`
	SellerID  uint64          `gorm:"column:seller_id;index;not null"`
	Seller    User            `gorm:"foreignKey:SellerID"`
	ItemID    uint64          `gorm:"column:item_id;index;not null"`
	Item      Item            `gorm:"foreignKey:ItemID"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status    OrderStatus     `gorm:"size:32;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}
