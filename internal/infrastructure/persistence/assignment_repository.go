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

// GormAssignmentRepository implements collection.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Assignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormAssignmentRepository) FindActiveByClient(ctx context.Context, clientID uuid.UUID) (*collection.Assignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND active = ?", clientID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormAssignmentRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter collection.AssignmentFilter) ([]collection.Assignment, error) {
	filter.AdvisorID = &advisorID
	return r.FindAll(ctx, filter)
}

func (r *GormAssignmentRepository) FindAll(ctx context.Context, filter collection.AssignmentFilter) ([]collection.Assignment, error) {
	var assignmentModels []models.AssignmentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AssignmentModel{}), filter)

	if err := query.Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]collection.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments, nil
}

func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *collection.Assignment) error {
	model := models.AssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// RecordAssignment writes the assignment rows and the client's advisor
// pointer in one transaction. The client update carries an optimistic
// lock, so a concurrent change rolls back every row.
func (r *GormAssignmentRepository) RecordAssignment(ctx context.Context, client *collection.Client, assignments ...*collection.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, assignment := range assignments {
			if err := tx.Save(models.AssignmentModelFromDomain(assignment)).Error; err != nil {
				return err
			}
		}
		return saveClientWithLock(tx, client)
	})
}

func (r *GormAssignmentRepository) Count(ctx context.Context, filter collection.AssignmentFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.AssignmentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAssignmentRepository) CountActiveByAdvisor(ctx context.Context, advisorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AssignmentModel{}).
		Where("advisor_id = ? AND active = ?", advisorID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAssignmentRepository) applyFilter(query *gorm.DB, filter collection.AssignmentFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, AssignmentSortFields, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("assigned_at DESC")
	}

	return query
}

func (r *GormAssignmentRepository) applyConditions(query *gorm.DB, filter collection.AssignmentFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AdvisorID != nil {
		query = query.Where("advisor_id = ?", *filter.AdvisorID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	return query
}

var _ collection.AssignmentRepository = (*GormAssignmentRepository)(nil)
