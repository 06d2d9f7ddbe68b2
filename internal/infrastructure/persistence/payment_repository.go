package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements collection.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormPaymentRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.PaymentFilter) ([]collection.Payment, error) {
	filter.ClientID = &clientID
	return r.FindAll(ctx, filter)
}

func (r *GormPaymentRepository) FindAll(ctx context.Context, filter collection.PaymentFilter) ([]collection.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]collection.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *collection.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a payment with optimistic locking so two supervisors
// cannot review the same payment concurrently.
func (r *GormPaymentRepository) SaveWithLock(ctx context.Context, payment *collection.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The payment record has been modified by another transaction")
	}
	return nil
}

func (r *GormPaymentRepository) Count(ctx context.Context, filter collection.PaymentFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) SumValidatedByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("client_id = ? AND status = ?", clientID, collection.PaymentStatusValidated).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter collection.PaymentFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, PaymentSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("paid_at DESC")
	}

	return query
}

func (r *GormPaymentRepository) applyConditions(query *gorm.DB, filter collection.PaymentFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("paid_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("paid_at <= ?", *filter.ToDate)
	}
	return query
}

var _ collection.PaymentRepository = (*GormPaymentRepository)(nil)
