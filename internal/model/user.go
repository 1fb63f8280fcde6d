package model

import "time"

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:150;not null;uniqueIndex:uk_users_username"`
	Email        string    `gorm:"size:254;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	AvatarURL    *string   `gorm:"size:512"`
	IsSeller     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
