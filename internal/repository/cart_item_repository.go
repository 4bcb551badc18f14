package repository

import (
	"context"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品はプラス。ストレージ側のアトミックなupsertで行う（同時追加で加算が消えない）。
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error
	// 明細が無ければ何もしない（エラーにしない）
	DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error
}
