package implementation

import (
	"context"
	"encoding/json"

	"kurazhelp-be/internal/model"
	"kurazhelp-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Write(ctx context.Context, level, module, message string, details map[string]interface{}) error {
	m := model.SystemLog{
		Level:   level,
		Module:  &module,
		Message: message,
	}

	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			m.Details = raw
		}
	}

	return r.db.WithContext(ctx).Create(&m).Error
}
