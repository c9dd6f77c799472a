package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id         uuid.UUID
	Title      string
	Content    string
	WordCount  int
	UserId     uuid.UUID
	CreatedAt  time.Time
	LastEdited time.Time
}
