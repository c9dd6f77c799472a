package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message    string     `json:"message"`
	Mode       string     `json:"mode"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
}

type TranscriptTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	Turns []TranscriptTurn `json:"turns"`
	Busy  bool             `json:"busy"`
}

type GetTranscriptResponse struct {
	Turns []TranscriptTurn `json:"turns"`
	Busy  bool             `json:"busy"`
}
