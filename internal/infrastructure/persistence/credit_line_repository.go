package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/persistence/models"
)

// GormCreditLineRepository implements collection.CreditLineRepository using GORM.
type GormCreditLineRepository struct {
	db *gorm.DB
}

func NewGormCreditLineRepository(db *gorm.DB) *GormCreditLineRepository {
	return &GormCreditLineRepository{db: db}
}

func (r *GormCreditLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CreditLine, error) {
	var model models.CreditLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCreditLineRepository) FindByClient(ctx context.Context, clientID uuid.UUID) (*collection.CreditLine, error) {
	var model models.CreditLineModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCreditLineRepository) Save(ctx context.Context, line *collection.CreditLine) error {
	model := models.CreditLineModelFromDomain(line)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormCreditLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CreditLineModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ collection.CreditLineRepository = (*GormCreditLineRepository)(nil)
