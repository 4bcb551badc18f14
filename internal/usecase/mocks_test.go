package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	repo "github.com/ozgunabanoz/shopping-site-project/internal/repository"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, userID int64, p model.Product) error {
	args := m.Called(ctx, userID, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, userID int64, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByCheckoutSessionID(ctx context.Context, sessionID string) (model.Order, bool, error) {
	args := m.Called(ctx, sessionID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CheckoutSessionRepoMock struct{ mock.Mock }

func (m *CheckoutSessionRepoMock) Create(ctx context.Context, s model.CheckoutSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *CheckoutSessionRepoMock) FindBySessionID(ctx context.Context, sessionID string) (model.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(model.CheckoutSession)
	return s, args.Error(1)
}

func (m *CheckoutSessionRepoMock) UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error {
	args := m.Called(ctx, sessionID, status)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	products   repo.ProductRepository
	sessions   repo.CheckoutSessionRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                     { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository                       { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository               { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository                 { return r.products }
func (r *TxReposMock) CheckoutSessions() repo.CheckoutSessionRepository { return r.sessions }

// =====================
// 外部サービスの境界のmocks
// =====================

type PaymentGatewayMock struct{ mock.Mock }

func (m *PaymentGatewayMock) CreateSession(ctx context.Context, items []usecase.PaymentLineItem, successURL string, cancelURL string) (usecase.PaymentSession, error) {
	args := m.Called(ctx, items, successURL, cancelURL)
	s, _ := args.Get(0).(usecase.PaymentSession)
	return s, args.Error(1)
}

type RendererMock struct{ mock.Mock }

func (m *RendererMock) Render(o model.Order, items []model.OrderItem) ([]byte, error) {
	args := m.Called(o, items)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type ArtifactStoreMock struct{ mock.Mock }

func (m *ArtifactStoreMock) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

type ResetTokenStoreMock struct{ mock.Mock }

func (m *ResetTokenStoreMock) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *ResetTokenStoreMock) Consume(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) SendPasswordReset(to string, resetURL string) error {
	args := m.Called(to, resetURL)
	return args.Error(0)
}

type AuthValidatorMock struct{ mock.Mock }

func (m *AuthValidatorMock) ValidateRegister(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *AuthValidatorMock) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

// =====================
// Helpers
// =====================

func assertHTTPStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	if assert.Error(t, err) {
		he, ok := usecase.AsHTTPError(err)
		if assert.True(t, ok, "err=%v want *HTTPError", err) {
			assert.Equal(t, wantStatus, he.Status)
		}
	}
}
