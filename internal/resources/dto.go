package resources

import (
	"github.com/shopspring/decimal"

	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
)

// CreateResourceRequest holds the validated payload to create a resource.
type CreateResourceRequest struct {
	Name        string                    `json:"name" validate:"required"`
	Type        string                    `json:"type" validate:"required"`
	Quantity    decimal.Decimal           `json:"quantity"`
	Unit        enums.ResourceUnit        `json:"unit" validate:"required"`
	UsageStatus enums.ResourceUsageStatus `json:"usage_status,omitempty"`
}

// UpdateResourceRequest holds optional mutation values for a resource.
type UpdateResourceRequest struct {
	Name        *string                    `json:"name,omitempty"`
	Type        *string                    `json:"type,omitempty"`
	Quantity    *decimal.Decimal           `json:"quantity,omitempty"`
	Unit        *enums.ResourceUnit        `json:"unit,omitempty"`
	UsageStatus *enums.ResourceUsageStatus `json:"usage_status,omitempty"`
}
