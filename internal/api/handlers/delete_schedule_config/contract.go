package delete_schedule_config

import "context"

type ScheduleService interface {
	Delete(ctx context.Context, username string, eventTypeID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
