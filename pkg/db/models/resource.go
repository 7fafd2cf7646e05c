package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
)

// Resource is a farm input (seed, fertilizer, fuel) tracked by quantity.
type Resource struct {
	ID          uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     uuid.UUID                 `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string                    `gorm:"type:text;not null" json:"name"`
	Quantity    decimal.Decimal           `gorm:"type:numeric(14,3);not null" json:"quantity"`
	Type        string                    `gorm:"type:text;not null" json:"type"`
	Unit        enums.ResourceUnit        `gorm:"type:resource_unit;not null" json:"unit"`
	UsageStatus enums.ResourceUsageStatus `gorm:"type:resource_usage_status;not null;default:available" json:"usage_status"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
