package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;index"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Type      string
	Title     string
	Message   string
	Link      *string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
