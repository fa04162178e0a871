package domain

// Значения по умолчанию для расписания
const (
	DefaultDayStart            = "10:00"
	DefaultDayEnd              = "20:00"
	DefaultSlotDurationMinutes = 30
	DefaultRangeDays           = 7
	DefaultTimeZone            = "UTC"
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxRangeDays           = 7
	MaxUsernameLength      = 255
)

// Форматы дат и времени
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	SlotLabel      = "3:04 PM"
	DayLabel       = "Monday, Jan 02"
	UpstreamFormat = "2006-01-02T15:04:05-0700"
)

// NoSlotsLabel текст для дня без свободных слотов
const NoSlotsLabel = "No available slots"
