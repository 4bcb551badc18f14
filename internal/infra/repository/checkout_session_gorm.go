package repository

import (
	"context"
	"errors"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	repo "github.com/ozgunabanoz/shopping-site-project/internal/repository"

	"gorm.io/gorm"
)

type CheckoutSessionGormRepository struct {
	db *gorm.DB
}

func NewCheckoutSessionGormRepository(db *gorm.DB) *CheckoutSessionGormRepository {
	return &CheckoutSessionGormRepository{db: db}
}

func (r *CheckoutSessionGormRepository) Create(ctx context.Context, s model.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(&s).Error
}

func (r *CheckoutSessionGormRepository) FindBySessionID(ctx context.Context, sessionID string) (model.CheckoutSession, error) {
	var s model.CheckoutSession

	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CheckoutSession{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CheckoutSession{}, err
	}
	return s, nil
}

func (r *CheckoutSessionGormRepository) UpdateStatus(ctx context.Context, sessionID string, status model.CheckoutStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.CheckoutSession{}).
		Where("session_id = ?", sessionID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
