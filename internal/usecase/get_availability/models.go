package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса свободного времени
// Пустые поля заполняются значениями по умолчанию из конфигурации сервиса
type Request struct {
	Username    string
	EventTypeID int64
	APIKey      string
	DateFrom    time.Time // zero = текущий момент
	DateTo      time.Time // zero = DateFrom + RangeDays
	TimeZone    string    // пусто = из настроек пользователя или ответа Cal.com
}

// Response модель ответа со свободными слотами по дням
type Response struct {
	Username    string
	EventTypeID int64
	TimeZone    string
	DateFrom    time.Time
	DateTo      time.Time
	Window      domain.WorkingWindow
	Granularity time.Duration
	Days        []domain.DaySchedule
}

// RequestDefaults значения для незаполненных полей запроса
type RequestDefaults struct {
	Username    string
	EventTypeID int64
	APIKey      string
}
