package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Preference struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Theme       string         `gorm:"type:varchar(20);not null;default:'dark'"`
	SidebarOpen bool           `gorm:"not null;default:true"`
	Extras      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "user_preferences"
}
