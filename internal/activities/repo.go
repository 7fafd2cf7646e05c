package activities

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
)

// Repository exposes owner-scoped persistence operations for activities.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listActivitiesParams struct {
	OwnerID uuid.UUID
	CropID  *uuid.UUID
	Limit   int
	Cursor  *pagination.Cursor
}

// Create inserts the activity and returns the persisted model.
func (r *Repository) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

// FindByID loads the activity only when it belongs to the owner.
func (r *Repository) FindByID(ctx context.Context, ownerID, activityID uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", activityID, ownerID).
		First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// List returns the owner's activities newest first with cursor pagination.
// When CropID is set the list is limited to that crop.
func (r *Repository) List(ctx context.Context, params listActivitiesParams) ([]models.Activity, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("owner_id = ?", params.OwnerID)
	if params.CropID != nil {
		query = query.Where("crop_id = ?", *params.CropID)
	}
	if params.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var activities []models.Activity
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, nil, err
	}

	if len(activities) > normalized {
		activities = activities[:normalized]
		last := activities[normalized-1]
		return activities, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return activities, nil, nil
}

// Update persists the mutated activity model.
func (r *Repository) Update(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

// Delete removes the activity when it belongs to the owner.
func (r *Repository) Delete(ctx context.Context, ownerID, activityID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", activityID, ownerID).
		Delete(&models.Activity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
