package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
	LastEdited time.Time `json:"last_edited"`
}

type UpdateContentRequest struct {
	Id      uuid.UUID
	Content string `json:"content"`
}

type UpdateTitleRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type UpdateDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	WordCount  int       `json:"word_count"`
	LastEdited time.Time `json:"last_edited"`
}
