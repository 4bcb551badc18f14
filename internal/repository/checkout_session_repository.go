package repository

import (
	"context"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
)

type CheckoutSessionRepository interface {
	Create(ctx context.Context, s model.CheckoutSession) error
	FindBySessionID(ctx context.Context, sessionID string) (model.CheckoutSession, error)
	UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error
}
