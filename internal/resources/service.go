package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
	"github.com/farmtrackhq/farmtrack-backend/pkg/pagination"
)

// Service exposes resource management operations scoped to the requesting owner.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateResourceRequest) (*models.Resource, error)
	Get(ctx context.Context, ownerID, resourceID uuid.UUID) (*models.Resource, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, ownerID, resourceID uuid.UUID, req UpdateResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, ownerID, resourceID uuid.UUID) error
}

// ListParams configures pagination for the resource list.
type ListParams struct {
	OwnerID uuid.UUID
	Limit   int
	Cursor  string
}

// ListResult wraps returned resources and the cursor for the next page.
type ListResult struct {
	Items  []models.Resource `json:"items"`
	Cursor string            `json:"cursor"`
}

type service struct {
	repo *Repository
}

// NewService constructs a resource service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("resources repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateResourceRequest) (*models.Resource, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type is required")
	}
	if req.Quantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if !req.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid resource unit")
	}

	usageStatus := req.UsageStatus
	if usageStatus == "" {
		usageStatus = enums.ResourceUsageAvailable
	}
	if !usageStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid usage status")
	}

	resource := &models.Resource{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UsageStatus: usageStatus,
	}

	created, err := s.repo.Create(ctx, resource)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert resource")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, ownerID, resourceID uuid.UUID) (*models.Resource, error) {
	resource, err := s.repo.FindByID(ctx, ownerID, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load resource")
	}
	return resource, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner required")
	}

	query := listResourcesParams{
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list resources")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Update(ctx context.Context, ownerID, resourceID uuid.UUID, req UpdateResourceRequest) (*models.Resource, error) {
	resource, err := s.Get(ctx, ownerID, resourceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		resource.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "type is required")
		}
		resource.Type = strings.TrimSpace(*req.Type)
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		resource.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		if !req.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid resource unit")
		}
		resource.Unit = *req.Unit
	}
	if req.UsageStatus != nil {
		if !req.UsageStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid usage status")
		}
		resource.UsageStatus = *req.UsageStatus
	}

	updated, err := s.repo.Update(ctx, resource)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update resource")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, ownerID, resourceID uuid.UUID) error {
	if ownerID == uuid.Nil || resourceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner and resource id required")
	}

	found, err := s.repo.Delete(ctx, ownerID, resourceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete resource")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return nil
}
