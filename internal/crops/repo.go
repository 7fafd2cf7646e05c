package crops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
)

// Repository exposes owner-scoped persistence operations for crops.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a crops repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

type listCropsParams struct {
	OwnerID uuid.UUID
	Limit   int
	Cursor  *pagination.Cursor
}

// Create inserts the crop and returns the persisted model.
func (r *Repository) Create(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	if crop.ID == uuid.Nil {
		crop.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(crop).Error; err != nil {
		return nil, err
	}
	return crop, nil
}

// FindByID loads the crop only when it belongs to the owner.
func (r *Repository) FindByID(ctx context.Context, ownerID, cropID uuid.UUID) (*models.Crop, error) {
	var crop models.Crop
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", cropID, ownerID).
		First(&crop).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// List returns the owner's crops newest first with cursor pagination.
func (r *Repository) List(ctx context.Context, params listCropsParams) ([]models.Crop, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Crop{}).Where("owner_id = ?", params.OwnerID)
	if params.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var crops []models.Crop
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&crops).Error; err != nil {
		return nil, nil, err
	}

	if len(crops) > normalized {
		crops = crops[:normalized]
		last := crops[normalized-1]
		return crops, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return crops, nil, nil
}

// Update persists the mutated crop model.
func (r *Repository) Update(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	if err := r.db.WithContext(ctx).Save(crop).Error; err != nil {
		return nil, err
	}
	return crop, nil
}

// DeleteCascade removes the crop along with its activities and the
// notifications that reference it. Callers run this inside a transaction so
// SQLite tests observe the same semantics Postgres enforces via ON DELETE
// CASCADE.
func (r *Repository) DeleteCascade(ctx context.Context, ownerID, cropID uuid.UUID) (bool, error) {
	if err := r.db.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Delete(&models.Activity{}).Error; err != nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Delete(&models.Notification{}).Error; err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", cropID, ownerID).
		Delete(&models.Crop{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
