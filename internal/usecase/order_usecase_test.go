package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	repo "github.com/ozgunabanoz/shopping-site-project/internal/repository"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 1, UserID: 1, Email: "buyer@example.com", Total: decimal.RequireFromString("25.00")},
		{ID: 2, UserID: 1, Email: "buyer@example.com", Total: decimal.RequireFromString("7.50")},
	}, nil)
	items.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{
		{OrderID: 1, ProductID: 100, TitleSnapshot: "mug", UnitPriceSnapshot: decimal.RequireFromString("7.50"), Quantity: 2},
		{OrderID: 1, ProductID: 200, TitleSnapshot: "poster", UnitPriceSnapshot: decimal.RequireFromString("10.00"), Quantity: 1},
	}, nil)
	items.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{
		{OrderID: 2, ProductID: 100, TitleSnapshot: "mug", UnitPriceSnapshot: decimal.RequireFromString("7.50"), Quantity: 1},
	}, nil)

	uc := usecase.NewOrderUsecase(orders, items)
	out, err := uc.ListMyOrders(context.Background(), 1)

	assert.NoError(t, err)
	if assert.Len(t, out, 2) {
		assert.Len(t, out[0].Items, 2)
		//明細は購入時点のスナップショット
		assert.Equal(t, "mug", out[0].Items[0].Title)
		assert.True(t, out[0].Items[0].Price.Equal(decimal.RequireFromString("7.50")))
	}
}

func TestOrderUsecase_GetMyOrderDetail_NotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))
	_, err := uc.GetMyOrderDetail(context.Background(), 1, 42)

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderLooksMissing(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, UserID: 7, Email: "owner@example.com"}, nil)

	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))
	_, err := uc.GetMyOrderDetail(context.Background(), 1, 42)

	//他人の注文は存在自体を隠す
	assertHTTPStatus(t, err, http.StatusNotFound)
}
