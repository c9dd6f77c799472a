package model

import (
	"time"

	"github.com/google/uuid"
)

// Deletes are permanent; there is no soft-delete column here.
type Document struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text"`
	WordCount  int       `gorm:"not null;default:0"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	LastEdited time.Time `gorm:"not null;index:idx_documents_user_last_edited,sort:desc"`
}

func (Document) TableName() string {
	return "documents"
}
