package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
)

// Notification stores in-app reminder payloads scoped to owners. CropID is
// optional; when the referenced crop is deleted the notification goes with it.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"owner_id"`
	CropID    *uuid.UUID             `gorm:"type:uuid;index" json:"crop_id,omitempty"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Type      enums.NotificationType `gorm:"type:notification_type;not null" json:"type"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
