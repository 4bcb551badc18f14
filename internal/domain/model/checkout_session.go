package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "PENDING"
	CheckoutStatusCompleted CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed    CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

// CheckoutLine は決済セッション作成時点のカート1行のスナップショット。
type CheckoutLine struct {
	ProductID   int64           `json:"product_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// CheckoutSession は決済プロバイダとのセッションをDBに固定したもの。
// Snapshotは作成時点のカート全行（JSON）。注文はこのスナップショットから
// 作られるため、注文合計はプロバイダへ送った合計と必ず一致する。
type CheckoutSession struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"session_id"`
	UserID    int64           `gorm:"not null;index" json:"user_id"`
	Status    CheckoutStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Snapshot  string          `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
