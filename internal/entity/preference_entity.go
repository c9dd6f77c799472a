package entity

import (
	"time"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Preference holds per-user UI state that survives across sessions. It lives
// outside the document domain.
type Preference struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Theme       Theme
	SidebarOpen bool
	Extras      map[string]interface{}
	UpdatedAt   time.Time
}
