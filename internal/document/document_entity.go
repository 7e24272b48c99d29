package document

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Category   *string    `gorm:"type:varchar(50)"`
	FileKey    string     `gorm:"type:varchar(500);not null"`
	FileName   string     `gorm:"type:varchar(255);not null"`
	MimeType   string     `gorm:"type:varchar(100);not null"`
	Size       int64      `gorm:"not null"`
	UploadedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) OwnerID() string {
	if d.EmployeeID == nil {
		return ""
	}
	return d.EmployeeID.String()
}
