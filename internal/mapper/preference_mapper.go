package mapper

import (
	"encoding/json"

	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/model"

	"gorm.io/datatypes"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.Preference) *entity.Preference {
	if p == nil {
		return nil
	}

	var extras map[string]interface{}
	if len(p.Extras) > 0 {
		// Corrupt extras should not break preference reads.
		_ = json.Unmarshal(p.Extras, &extras)
	}

	return &entity.Preference{
		Id:          p.Id,
		UserId:      p.UserId,
		Theme:       entity.Theme(p.Theme),
		SidebarOpen: p.SidebarOpen,
		Extras:      extras,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.Preference) *model.Preference {
	if p == nil {
		return nil
	}

	var extras datatypes.JSON
	if p.Extras != nil {
		if raw, err := json.Marshal(p.Extras); err == nil {
			extras = raw
		}
	}

	return &model.Preference{
		Id:          p.Id,
		UserId:      p.UserId,
		Theme:       string(p.Theme),
		SidebarOpen: p.SidebarOpen,
		Extras:      extras,
		UpdatedAt:   p.UpdatedAt,
	}
}
