package resources

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
)

// Repository exposes owner-scoped persistence operations for resources.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a resources repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listResourcesParams struct {
	OwnerID uuid.UUID
	Limit   int
	Cursor  *pagination.Cursor
}

// Create inserts the resource and returns the persisted model.
func (r *Repository) Create(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// FindByID loads the resource only when it belongs to the owner.
func (r *Repository) FindByID(ctx context.Context, ownerID, resourceID uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", resourceID, ownerID).
		First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List returns the owner's resources newest first with cursor pagination.
func (r *Repository) List(ctx context.Context, params listResourcesParams) ([]models.Resource, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Resource{}).Where("owner_id = ?", params.OwnerID)
	if params.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&resources).Error; err != nil {
		return nil, nil, err
	}

	if len(resources) > normalized {
		resources = resources[:normalized]
		last := resources[normalized-1]
		return resources, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return resources, nil, nil
}

// Update persists the mutated resource model.
func (r *Repository) Update(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes the resource when it belongs to the owner.
func (r *Repository) Delete(ctx context.Context, ownerID, resourceID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", resourceID, ownerID).
		Delete(&models.Resource{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
