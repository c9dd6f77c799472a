package contract

import "context"

type SystemLogRepository interface {
	Write(ctx context.Context, level, module, message string, details map[string]interface{}) error
}
