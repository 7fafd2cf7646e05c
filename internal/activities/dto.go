package activities

import (
	"github.com/google/uuid"

	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// CreateActivityRequest holds the validated payload to create an activity.
type CreateActivityRequest struct {
	CropID      uuid.UUID  `json:"crop_id" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Date        types.Date `json:"date" validate:"required"`
}

// UpdateActivityRequest holds optional mutation values for an activity.
type UpdateActivityRequest struct {
	CropID      *uuid.UUID  `json:"crop_id,omitempty"`
	Description *string     `json:"description,omitempty"`
	Date        *types.Date `json:"date,omitempty"`
}
