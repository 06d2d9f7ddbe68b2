package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/persistence/models"
)

// GormDebtRepository implements collection.DebtRepository using GORM.
type GormDebtRepository struct {
	db *gorm.DB
}

func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormDebtRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.DebtFilter) ([]collection.Debt, error) {
	filter.ClientID = &clientID
	return r.FindAll(ctx, filter)
}

func (r *GormDebtRepository) FindAll(ctx context.Context, filter collection.DebtFilter) ([]collection.Debt, error) {
	var debtModels []models.DebtModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DebtModel{}), filter)

	if err := query.Find(&debtModels).Error; err != nil {
		return nil, err
	}

	debts := make([]collection.Debt, len(debtModels))
	for i, model := range debtModels {
		debts[i] = *model.ToDomain()
	}
	return debts, nil
}

func (r *GormDebtRepository) Save(ctx context.Context, debt *collection.Debt) error {
	model := models.DebtModelFromDomain(debt)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DebtModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDebtRepository) Count(ctx context.Context, filter collection.DebtFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.DebtModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDebtRepository) SumPrincipalByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Select("COALESCE(SUM(principal), 0)").
		Where("client_id = ?", clientID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormDebtRepository) applyFilter(query *gorm.DB, filter collection.DebtFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, DebtSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("due_date ASC")
	}

	return query
}

func (r *GormDebtRepository) applyConditions(query *gorm.DB, filter collection.DebtFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Overdue != nil {
		if *filter.Overdue {
			query = query.Where("due_date < ?", time.Now())
		} else {
			query = query.Where("due_date >= ?", time.Now())
		}
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	return query
}

var _ collection.DebtRepository = (*GormDebtRepository)(nil)
