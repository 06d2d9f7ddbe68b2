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

// GormEvaluationRepository implements collection.EvaluationRepository using GORM.
type GormEvaluationRepository struct {
	db *gorm.DB
}

func NewGormEvaluationRepository(db *gorm.DB) *GormEvaluationRepository {
	return &GormEvaluationRepository{db: db}
}

func (r *GormEvaluationRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Evaluation, error) {
	var model models.EvaluationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormEvaluationRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.EvaluationFilter) ([]collection.Evaluation, error) {
	filter.ClientID = &clientID
	return r.FindAll(ctx, filter)
}

func (r *GormEvaluationRepository) FindAll(ctx context.Context, filter collection.EvaluationFilter) ([]collection.Evaluation, error) {
	var evaluationModels []models.EvaluationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EvaluationModel{}), filter)

	if err := query.Find(&evaluationModels).Error; err != nil {
		return nil, err
	}

	evaluations := make([]collection.Evaluation, len(evaluationModels))
	for i, model := range evaluationModels {
		evaluations[i] = *model.ToDomain()
	}
	return evaluations, nil
}

func (r *GormEvaluationRepository) Save(ctx context.Context, evaluation *collection.Evaluation) error {
	model := models.EvaluationModelFromDomain(evaluation)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormEvaluationRepository) Count(ctx context.Context, filter collection.EvaluationFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.EvaluationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEvaluationRepository) applyFilter(query *gorm.DB, filter collection.EvaluationFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, EvaluationSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("evaluated_at DESC")
	}

	return query
}

func (r *GormEvaluationRepository) applyConditions(query *gorm.DB, filter collection.EvaluationFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

var _ collection.EvaluationRepository = (*GormEvaluationRepository)(nil)
