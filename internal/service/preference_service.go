package service

import (
	"context"
	"time"

	"kurazhelp-be/internal/dto"
	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPreferenceService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory) IPreferenceService {
	return &preferenceService{uowFactory: uowFactory}
}

// Defaults mirror a fresh client: dark theme, sidebar open.
func defaultPreference(userId uuid.UUID) *entity.Preference {
	return &entity.Preference{
		Id:          uuid.New(),
		UserId:      userId,
		Theme:       entity.ThemeDark,
		SidebarOpen: true,
	}
}

func (s *preferenceService) Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = defaultPreference(userId)
	}

	return &dto.PreferenceResponse{
		Theme:       string(pref.Theme),
		SidebarOpen: pref.SidebarOpen,
	}, nil
}

func (s *preferenceService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = defaultPreference(userId)
	}

	if req.Theme != nil {
		pref.Theme = entity.Theme(*req.Theme)
	}
	if req.SidebarOpen != nil {
		pref.SidebarOpen = *req.SidebarOpen
	}
	pref.UpdatedAt = time.Now()

	if err := uow.PreferenceRepository().Upsert(ctx, pref); err != nil {
		return nil, err
	}

	return &dto.PreferenceResponse{
		Theme:       string(pref.Theme),
		SidebarOpen: pref.SidebarOpen,
	}, nil
}
