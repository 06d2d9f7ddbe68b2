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

// GormStatusTransitionRepository implements the delinquency status history
// store. Transitions are append-only; there is no update or delete path.
type GormStatusTransitionRepository struct {
	db *gorm.DB
}

func NewGormStatusTransitionRepository(db *gorm.DB) *GormStatusTransitionRepository {
	return &GormStatusTransitionRepository{db: db}
}

// RecordTransition commits the client's new status and its history row in
// one transaction. The client update carries an optimistic lock so a
// concurrent change rolls back the whole operation, history row included.
func (r *GormStatusTransitionRepository) RecordTransition(ctx context.Context, client *collection.Client, transition *collection.StatusTransition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveClientWithLock(tx, client); err != nil {
			return err
		}
		return tx.Create(models.StatusTransitionModelFromDomain(transition)).Error
	})
}

func (r *GormStatusTransitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.StatusTransition, error) {
	var model models.StatusTransitionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormStatusTransitionRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.TransitionFilter) ([]collection.StatusTransition, error) {
	filter.ClientID = &clientID
	return r.FindAll(ctx, filter)
}

func (r *GormStatusTransitionRepository) FindAll(ctx context.Context, filter collection.TransitionFilter) ([]collection.StatusTransition, error) {
	var transitionModels []models.StatusTransitionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StatusTransitionModel{}), filter)

	if err := query.Find(&transitionModels).Error; err != nil {
		return nil, err
	}

	transitions := make([]collection.StatusTransition, len(transitionModels))
	for i, model := range transitionModels {
		transitions[i] = *model.ToDomain()
	}
	return transitions, nil
}

func (r *GormStatusTransitionRepository) Count(ctx context.Context, filter collection.TransitionFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.StatusTransitionModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStatusTransitionRepository) applyFilter(query *gorm.DB, filter collection.TransitionFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, TransitionSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		// History reads newest first.
		query = query.Order("changed_at DESC")
	}

	return query
}

func (r *GormStatusTransitionRepository) applyConditions(query *gorm.DB, filter collection.TransitionFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ChangedBy != nil {
		query = query.Where("changed_by = ?", *filter.ChangedBy)
	}
	if filter.FromDate != nil {
		query = query.Where("changed_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("changed_at <= ?", *filter.ToDate)
	}
	return query
}

var _ collection.StatusTransitionRepository = (*GormStatusTransitionRepository)(nil)
