package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentOwnedByUser struct {
	UserID uuid.UUID
}

func (s DocumentOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("documents.user_id = ?", s.UserID)
}

// ByLastEditedDesc orders documents newest-edit-first, the order every
// mirror snapshot uses.
type ByLastEditedDesc struct{}

func (s ByLastEditedDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("last_edited DESC")
}
