package repository

import (
	"context"
	"errors"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// unique制約違反
var ErrDuplicate = errors.New("duplicate")

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// 所有ユーザーのものだけ更新できる。他人の商品は ErrNotFound。
	Update(ctx context.Context, userID int64, p model.Product) error
	SoftDelete(ctx context.Context, userID int64, id int64) error
}
