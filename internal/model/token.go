package model

import "time"

// Token is an opaque bearer token, one per user, carried in the
// auth_token cookie. No expiry is modeled.
type Token struct {
	Key       string    `gorm:"column:token_key;primaryKey;size:64"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:uk_tokens_user;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Token) TableName() string {
	return "tokens"
}
