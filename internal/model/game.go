package model

import "time"

type Game struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:120;not null"`
	Slug      string    `gorm:"size:120;not null;uniqueIndex:uk_games_slug"`
	ImageURL  *string   `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Game) TableName() string {
	return "games"
}
