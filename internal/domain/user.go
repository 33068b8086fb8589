package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Image        *string   `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserInfo is the public subset embedded in enriched rows
// (message authors, event creators, resource uploaders).
type UserInfo struct {
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}
