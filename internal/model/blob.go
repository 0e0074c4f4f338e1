package model

import "time"

// Blob is a stored payload in blobd, the self-hostable blob service.
// Content is opaque to the server: blobd never inspects or parses it.
type Blob struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
