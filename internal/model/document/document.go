package document

import (
	"time"

	"github.com/google/uuid"
)

const StatusUploaded = "uploaded"

type Document struct {
	ID         uuid.UUID `json:"id"`
	Owner      string    `json:"owner"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
