package profile

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile хранит агрегаты по владельцу: счётчик документов и занятые байты.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	Owner          string    `json:"owner"`
	Email          string    `json:"email"`
	TotalDocuments int64     `json:"total_documents"`
	StorageUsed    int64     `json:"storage_used"`
	LastActiveAt   time.Time `json:"last_active_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
