package crops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db"
	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// Service exposes crop management operations scoped to the requesting owner.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateCropRequest) (*models.Crop, error)
	Get(ctx context.Context, ownerID, cropID uuid.UUID) (*models.Crop, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, ownerID, cropID uuid.UUID, req UpdateCropRequest) (*models.Crop, error)
	Delete(ctx context.Context, ownerID, cropID uuid.UUID) error
}

// ListParams configures pagination for the crop list.
type ListParams struct {
	OwnerID uuid.UUID
	Limit   int
	Cursor  string
}

// ListResult wraps returned crops and the cursor for the next page.
type ListResult struct {
	Items  []models.Crop `json:"items"`
	Cursor string        `json:"cursor"`
}

type reminderEvaluator interface {
	CropSaved(ctx context.Context, crop *models.Crop, now time.Time)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	reminders reminderEvaluator
}

// NewService constructs a crop service instance.
func NewService(repo *Repository, dbClient *db.Client, reminders reminderEvaluator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("crops repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if reminders == nil {
		return nil, fmt.Errorf("reminder evaluator required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		reminders: reminders,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateCropRequest) (*models.Crop, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}
	if err := validateCropFields(req.Name, req.Variety, req.PlantingDate, req.HarvestDate); err != nil {
		return nil, err
	}
	if !req.PlantingDate.Before(req.HarvestDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planting_date must be before harvest_date")
	}

	status := req.Status
	if status == "" {
		status = enums.CropStatusPlanting
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid crop status")
	}

	crop := &models.Crop{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Variety:      strings.TrimSpace(req.Variety),
		PlantingDate: req.PlantingDate,
		HarvestDate:  req.HarvestDate,
		Status:       status,
	}

	created, err := s.repo.Create(ctx, crop)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert crop")
	}

	s.reminders.CropSaved(ctx, created, time.Now().UTC())
	return created, nil
}

func (s *service) Get(ctx context.Context, ownerID, cropID uuid.UUID) (*models.Crop, error) {
	crop, err := s.repo.FindByID(ctx, ownerID, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load crop")
	}
	return crop, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}

	query := listCropsParams{
		OwnerID: params.OwnerID,
		Limit:   params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crops")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Update(ctx context.Context, ownerID, cropID uuid.UUID, req UpdateCropRequest) (*models.Crop, error) {
	crop, err := s.Get(ctx, ownerID, cropID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		crop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Variety != nil {
		crop.Variety = strings.TrimSpace(*req.Variety)
	}
	if req.PlantingDate != nil {
		crop.PlantingDate = *req.PlantingDate
	}
	if req.HarvestDate != nil {
		crop.HarvestDate = *req.HarvestDate
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid crop status")
		}
		crop.Status = *req.Status
	}

	if err := validateCropFields(crop.Name, crop.Variety, crop.PlantingDate, crop.HarvestDate); err != nil {
		return nil, err
	}
	if !crop.PlantingDate.Before(crop.HarvestDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planting_date must be before harvest_date")
	}

	updated, err := s.repo.Update(ctx, crop)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update crop")
	}

	s.reminders.CropSaved(ctx, updated, time.Now().UTC())
	return updated, nil
}

func (s *service) Delete(ctx context.Context, ownerID, cropID uuid.UUID) error {
	if ownerID == uuid.Nil || cropID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner and crop id required")
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		found, err := s.repo.WithTx(tx).DeleteCascade(ctx, ownerID, cropID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete crop")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
		}
		return nil
	})
}

func validateCropFields(name, variety string, plantingDate, harvestDate types.Date) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(variety) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "variety is required")
	}
	if plantingDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "planting_date is required")
	}
	if harvestDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "harvest_date is required")
	}
	return nil
}
