package dto

import (
	"time"

	"github.com/google/uuid"
)

type ImagePayload struct {
	Data      string `json:"data" validate:"required"` // base64-encoded
	MediaType string `json:"media_type" validate:"required"`
}

type QueryRequest struct {
	SessionId uuid.UUID     `json:"session_id,omitempty"`
	Question  string        `json:"question"`
	Mode      string        `json:"mode" validate:"required"`
	Image     *ImagePayload `json:"image,omitempty"`
}

type QueryResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Text      string    `json:"text"`
	Errored   bool      `json:"errored"`
	Outcome   string    `json:"outcome"` // "grounded-answer" | "refusal-sentinel"
}

type ChatTurnResponse struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionHistoryResponse struct {
	SessionId uuid.UUID          `json:"session_id"`
	Turns     []ChatTurnResponse `json:"turns"`
}
