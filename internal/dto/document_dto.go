package dto

import (
	"fmt"
	"time"
)

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Source  string `json:"source,omitempty"`
}

type CreateDocumentResponse struct {
	Id    uint   `json:"id"`
	Title string `json:"title"`
}

// DocumentMetadataResponse deliberately omits content: listing is a
// metadata-only surface.
type DocumentMetadataResponse struct {
	Id        uint      `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchDocumentResponse struct {
	Id        uint   `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Relevance int    `json:"relevance"`
}

// ValidationError rejects an ingest request before any id is consumed.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required and must not be empty", e.Field)
}
