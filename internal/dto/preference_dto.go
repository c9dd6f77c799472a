package dto

type PreferenceResponse struct {
	Theme       string `json:"theme"`
	SidebarOpen bool   `json:"sidebar_open"`
}

type UpdatePreferenceRequest struct {
	Theme       *string `json:"theme" validate:"omitempty,oneof=dark light"`
	SidebarOpen *bool   `json:"sidebar_open"`
}
