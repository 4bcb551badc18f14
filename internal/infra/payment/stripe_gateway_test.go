package payment

import (
	"testing"

	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestBuildSessionParams(t *testing.T) {
	items := []usecase.PaymentLineItem{
		{Name: "mug", Description: "a nice mug", UnitAmount: 750, Currency: "usd", Quantity: 2},
	}

	params := buildSessionParams(items, "https://shop.example.com/success", "https://shop.example.com/cancel")

	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "https://shop.example.com/success", *params.SuccessURL)
	if assert.Len(t, params.LineItems, 1) {
		li := params.LineItems[0]
		assert.Equal(t, int64(750), *li.PriceData.UnitAmount)
		assert.Equal(t, "usd", *li.PriceData.Currency)
		assert.Equal(t, int64(2), *li.Quantity)
		assert.Equal(t, "mug", *li.PriceData.ProductData.Name)
		assert.Equal(t, "a nice mug", *li.PriceData.ProductData.Description)
	}
}

func TestBuildSessionParams_EmptyDescriptionOmitted(t *testing.T) {
	items := []usecase.PaymentLineItem{
		{Name: "mug", UnitAmount: 750, Currency: "usd", Quantity: 1},
	}

	params := buildSessionParams(items, "https://shop.example.com/success", "https://shop.example.com/cancel")

	//Stripeは空文字を拒否するので、説明なしの商品はフィールドごと省く
	if assert.Len(t, params.LineItems, 1) {
		assert.Nil(t, params.LineItems[0].PriceData.ProductData.Description)
	}
}
