package document

import "time"

// UploadDocumentRequest carries the multipart form fields next to "file".
type UploadDocumentRequest struct {
	EmployeeID string `form:"employeeId" binding:"omitempty,uuid"`
	Title      string `form:"title" binding:"max=255"`
	Category   string `form:"category" binding:"max=50"`
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	EmployeeID *string   `json:"employeeId"`
	Title      string    `json:"title"`
	Category   *string   `json:"category,omitempty"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	UploadedBy *string   `json:"uploadedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Download struct {
	Path     string
	FileName string
	MimeType string
}
