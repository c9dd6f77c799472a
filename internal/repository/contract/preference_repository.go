package contract

import (
	"context"

	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PreferenceRepository interface {
	// Upsert writes the preference row for its user, creating it on first use.
	Upsert(ctx context.Context, pref *entity.Preference) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error)
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
