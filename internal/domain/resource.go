package domain

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UploaderID  uuid.UUID `json:"uploader_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	FileID      uuid.UUID `json:"file_id"`
	FileType    string    `json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
	// Joined fields
	Uploader *UserInfo `json:"uploader,omitempty"`
	URL      string    `json:"url,omitempty"`
}

// File is an opaque stored blob. Data is never serialized; downloads stream
// it through the file handler.
type File struct {
	ID          uuid.UUID `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
