package repository

import (
	"context"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	// 検索（同じセッションなら同じ注文を返す）
	FindByCheckoutSessionID(ctx context.Context, sessionID string) (model.Order, bool, error)
}
