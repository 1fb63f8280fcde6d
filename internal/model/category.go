package model

import "time"

type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:120;not null"`
	Slug      string    `gorm:"size:120;not null;uniqueIndex:uk_categories_game_slug"`
	GameID    uint64    `gorm:"column:game_id;uniqueIndex:uk_categories_game_slug;index;not null"`
	Game      Game      `gorm:"foreignKey:GameID"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
