package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
)

// Service exposes activity management operations scoped to the requesting owner.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateActivityRequest) (*models.Activity, error)
	Get(ctx context.Context, ownerID, activityID uuid.UUID) (*models.Activity, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, ownerID, activityID uuid.UUID, req UpdateActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, ownerID, activityID uuid.UUID) error
}

// ListParams configures pagination and filtering for the activity list.
type ListParams struct {
	OwnerID uuid.UUID
	CropID  *uuid.UUID
	Limit   int
	Cursor  string
}

// ListResult wraps returned activities and the cursor for the next page.
type ListResult struct {
	Items  []models.Activity `json:"items"`
	Cursor string            `json:"cursor"`
}

type cropFinder interface {
	FindByID(ctx context.Context, ownerID, cropID uuid.UUID) (*models.Crop, error)
}

type reminderEvaluator interface {
	ActivitySaved(ctx context.Context, activity *models.Activity, crop *models.Crop, now time.Time)
}

type service struct {
	repo      *Repository
	crops     cropFinder
	reminders reminderEvaluator
}

// NewService constructs an activity service instance.
func NewService(repo *Repository, crops cropFinder, reminders reminderEvaluator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activities repository required")
	}
	if crops == nil {
		return nil, fmt.Errorf("crop finder required")
	}
	if reminders == nil {
		return nil, fmt.Errorf("reminder evaluator required")
	}
	return &service{
		repo:      repo,
		crops:     crops,
		reminders: reminders,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateActivityRequest) (*models.Activity, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if req.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if req.CropID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "crop_id is required")
	}

	crop, err := s.ownedCrop(ctx, ownerID, req.CropID)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		OwnerID:     ownerID,
		CropID:      req.CropID,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
	}

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert activity")
	}

	s.reminders.ActivitySaved(ctx, created, crop, time.Now().UTC())
	return created, nil
}

func (s *service) Get(ctx context.Context, ownerID, activityID uuid.UUID) (*models.Activity, error) {
	activity, err := s.repo.FindByID(ctx, ownerID, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load activity")
	}
	return activity, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}

	query := listActivitiesParams{
		OwnerID: params.OwnerID,
		CropID:  params.CropID,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list activities")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Update(ctx context.Context, ownerID, activityID uuid.UUID, req UpdateActivityRequest) (*models.Activity, error) {
	activity, err := s.Get(ctx, ownerID, activityID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
		}
		activity.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
		}
		activity.Date = *req.Date
	}
	if req.CropID != nil {
		if *req.CropID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "crop_id is required")
		}
		activity.CropID = *req.CropID
	}

	crop, err := s.ownedCrop(ctx, ownerID, activity.CropID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, activity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update activity")
	}

	s.reminders.ActivitySaved(ctx, updated, crop, time.Now().UTC())
	return updated, nil
}

func (s *service) Delete(ctx context.Context, ownerID, activityID uuid.UUID) error {
	if ownerID == uuid.Nil || activityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner and activity id required")
	}

	found, err := s.repo.Delete(ctx, ownerID, activityID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete activity")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "activity not found")
	}
	return nil
}

// ownedCrop resolves the referenced crop and hides crops belonging to other
// owners behind a not-found error.
func (s *service) ownedCrop(ctx context.Context, ownerID, cropID uuid.UUID) (*models.Crop, error) {
	crop, err := s.crops.FindByID(ctx, ownerID, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load crop")
	}
	return crop, nil
}
