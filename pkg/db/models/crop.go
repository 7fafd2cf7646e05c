package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// Crop tracks a planted crop through its growth cycle.
type Crop struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string           `gorm:"type:text;not null" json:"name"`
	Variety      string           `gorm:"type:text;not null" json:"variety"`
	PlantingDate types.Date       `gorm:"type:date;not null" json:"planting_date"`
	HarvestDate  types.Date       `gorm:"type:date;not null" json:"harvest_date"`
	Status       enums.CropStatus `gorm:"type:crop_status;not null;default:Planting" json:"status"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
