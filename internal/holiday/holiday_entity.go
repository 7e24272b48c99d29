package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holidays_tenant_date"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_tenant_date"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
