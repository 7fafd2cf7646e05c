package crops

import (
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// CreateCropRequest holds the validated payload to create a crop.
type CreateCropRequest struct {
	Name         string           `json:"name" validate:"required"`
	Variety      string           `json:"variety" validate:"required"`
	PlantingDate types.Date       `json:"planting_date" validate:"required"`
	HarvestDate  types.Date       `json:"harvest_date" validate:"required"`
	Status       enums.CropStatus `json:"status,omitempty"`
}

// UpdateCropRequest holds optional mutation values for a crop.
type UpdateCropRequest struct {
	Name         *string           `json:"name,omitempty"`
	Variety      *string           `json:"variety,omitempty"`
	PlantingDate *types.Date       `json:"planting_date,omitempty"`
	HarvestDate  *types.Date       `json:"harvest_date,omitempty"`
	Status       *enums.CropStatus `json:"status,omitempty"`
}
