package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	repo "github.com/ozgunabanoz/shopping-site-project/internal/repository"
)

// InvoiceRenderer は注文からPDFのバイト列を作る境界。
type InvoiceRenderer interface {
	Render(o model.Order, items []model.OrderItem) ([]byte, error)
}

// ArtifactStore は生成済み請求書の保管先。
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) error
}

// InvoiceUsecase は注文の請求書PDFを生成して保管し、同じ内容を返す。
// 全部メモリ上で描画してから保管と返却を行うので、片方だけ中途半端に
// 書かれた状態は起きない。
type InvoiceUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	renderer      InvoiceRenderer
	store         ArtifactStore
}

func NewInvoiceUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	renderer InvoiceRenderer,
	store ArtifactStore,
) *InvoiceUsecase {
	return &InvoiceUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		renderer:      renderer,
		store:         store,
	}
}

type InvoiceOutput struct {
	Key  string
	Data []byte
}

func (u *InvoiceUsecase) GenerateInvoice(ctx context.Context, userID int64, orderID int64) (InvoiceOutput, error) {
	if userID <= 0 {
		return InvoiceOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return InvoiceOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return InvoiceOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の注文の請求書は出さない
	if o.UserID != userID {
		return InvoiceOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	data, err := u.renderer.Render(o, items)
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "invoice render error")
	}

	key := fmt.Sprintf("invoice-%d.pdf", orderID)
	if err := u.store.Put(ctx, key, data); err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "invoice store error")
	}

	return InvoiceOutput{Key: key, Data: data}, nil
}
