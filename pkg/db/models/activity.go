package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

// Activity is a dated task tied to a crop, removed when its crop or owner is
// deleted.
type Activity struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	CropID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"crop_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Date        types.Date `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
