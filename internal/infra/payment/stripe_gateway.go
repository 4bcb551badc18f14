package payment

import (
	"context"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway はStripe Checkoutで決済セッションを作る。
// サーキットブレーカ越しに呼び、タイムアウトも呼び出し失敗として返す。
// ここではリトライしない（冪等キー無しの再試行はセッション重複のリスク）。
type StripeGateway struct {
	api     *client.API
	breaker *gobreaker.CircuitBreaker[usecase.PaymentSession]
	timeout time.Duration
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	cb := gobreaker.NewCircuitBreaker[usecase.PaymentSession](gobreaker.Settings{
		Name:    "stripe-checkout",
		Timeout: 30 * time.Second,
	})

	return &StripeGateway{
		api:     api,
		breaker: cb,
		timeout: 10 * time.Second,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, items []usecase.PaymentLineItem, successURL string, cancelURL string) (usecase.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := buildSessionParams(items, successURL, cancelURL)
	params.Context = ctx

	return g.breaker.Execute(func() (usecase.PaymentSession, error) {
		s, err := g.api.CheckoutSessions.New(params)
		if err != nil {
			return usecase.PaymentSession{}, err
		}
		return usecase.PaymentSession{ID: s.ID, URL: s.URL}, nil
	})
}

func buildSessionParams(items []usecase.PaymentLineItem, successURL string, cancelURL string) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		//Stripeは空文字のパラメータを拒否する
		if it.Description != "" {
			productData.Description = stripe.String(it.Description)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(it.Currency),
				UnitAmount:  stripe.Int64(it.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
}
