package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements collection.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormClientRepository) FindByDocument(ctx context.Context, document string) (*collection.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("document = ?", strings.TrimSpace(document)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormClientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*collection.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormClientRepository) FindAll(ctx context.Context, filter collection.ClientFilter) ([]collection.Client, error) {
	var clientModels []models.ClientModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]collection.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

func (r *GormClientRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter collection.ClientFilter) ([]collection.Client, error) {
	filter.AdvisorID = &advisorID
	return r.FindAll(ctx, filter)
}

func (r *GormClientRepository) Save(ctx context.Context, client *collection.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a client with optimistic locking.
// Fails with CONCURRENCY_CONFLICT if the stored version has moved on.
func (r *GormClientRepository) SaveWithLock(ctx context.Context, client *collection.Client) error {
	return saveClientWithLock(r.db.WithContext(ctx), client)
}

func saveClientWithLock(db *gorm.DB, client *collection.Client) error {
	model := models.ClientModelFromDomain(client)
	result := db.
		Model(model).
		Where("id = ? AND version = ?", client.ID, client.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The client record has been modified by another transaction")
	}
	return nil
}

func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormClientRepository) Count(ctx context.Context, filter collection.ClientFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) CountByDelinquencyStatus(ctx context.Context) (map[collection.DelinquencyStatus]int64, error) {
	type statusCount struct {
		DelinquencyStatus collection.DelinquencyStatus
		Count             int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Select("delinquency_status, COUNT(*) as count").
		Where("status = ?", collection.ClientStatusActive).
		Group("delinquency_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[collection.DelinquencyStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.DelinquencyStatus] = row.Count
	}
	return counts, nil
}

func (r *GormClientRepository) SumDebtByDelinquencyStatus(ctx context.Context) (map[collection.DelinquencyStatus]decimal.Decimal, error) {
	type statusSum struct {
		DelinquencyStatus collection.DelinquencyStatus
		Total             decimal.Decimal
	}

	var rows []statusSum
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Select("delinquency_status, COALESCE(SUM(total_debt), 0) as total").
		Where("status = ?", collection.ClientStatusActive).
		Group("delinquency_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[collection.DelinquencyStatus]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.DelinquencyStatus] = row.Total
	}
	return sums, nil
}

func (r *GormClientRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("document = ?", strings.TrimSpace(document)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter collection.ClientFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, ClientSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

func (r *GormClientRepository) applyConditions(query *gorm.DB, filter collection.ClientFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DelinquencyStatus != nil {
		query = query.Where("delinquency_status = ?", *filter.DelinquencyStatus)
	}
	if filter.AdvisorID != nil {
		query = query.Where("advisor_id = ?", *filter.AdvisorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR document ILIKE ?", pattern, pattern)
	}
	if filter.MinDebt != nil {
		query = query.Where("total_debt >= ?", *filter.MinDebt)
	}
	if filter.MaxDebt != nil {
		query = query.Where("total_debt <= ?", *filter.MaxDebt)
	}
	return query
}

var _ collection.ClientRepository = (*GormClientRepository)(nil)
