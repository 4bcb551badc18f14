package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文は作成後に変更・削除されない。
type Order struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int64           `gorm:"not null;index" json:"user_id"`
	Email             string          `gorm:"not null" json:"email"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CheckoutSessionID string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
