package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。購入時点の商品情報をスナップショットとして保持する。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	TitleSnapshot       string          `gorm:"type:varchar(255);not null" json:"title_snapshot"`
	DescriptionSnapshot string          `gorm:"type:text" json:"description_snapshot"`
	ImageURLSnapshot    string          `gorm:"type:text" json:"image_url_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
