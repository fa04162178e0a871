package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Calcom   CalcomConfig   `toml:"calcom"`
	Schedule ScheduleConfig `toml:"schedule"`
	Cache    CacheConfig    `toml:"cache"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type CalcomConfig struct {
	BaseURL            string  `toml:"base_url"`
	APIKey             string  `toml:"api_key"`
	Timeout            int     `toml:"timeout"` // секунды
	RequestsPerSecond  float64 `toml:"requests_per_second"`
	Burst              int     `toml:"burst"`
	DefaultUsername    string  `toml:"default_username"`
	DefaultEventTypeID int64   `toml:"default_event_type_id"`
}

type ScheduleConfig struct {
	DayStart            string `toml:"day_start"` // HH:MM
	DayEnd              string `toml:"day_end"`   // HH:MM
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	RangeDays           int    `toml:"range_days"`
	DefaultTimeZone     string `toml:"default_timezone"`
}

// Defaults переводит секцию schedule в доменные значения по умолчанию
// Вызывается после Validate, поэтому ошибки разбора времени невозможны
func (c ScheduleConfig) Defaults() domain.ScheduleDefaults {
	start, _ := types.NewTimeStringFromString(c.DayStart)
	end, _ := types.NewTimeStringFromString(c.DayEnd)
	return domain.ScheduleDefaults{
		Window:              domain.WorkingWindow{DayStart: start, DayEnd: end},
		SlotDurationMinutes: c.SlotDurationMinutes,
		RangeDays:           c.RangeDays,
		TimeZone:            c.DefaultTimeZone,
	}
}

type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL время жизни записи кэша
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Load читает TOML файл, применяет значения по умолчанию, переменные окружения и валидирует
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "availability-service")

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Calcom.BaseURL, "https://api.cal.com/v1")
	setDefault(&c.Calcom.Timeout, 10)
	setDefault(&c.Calcom.RequestsPerSecond, 5)
	setDefault(&c.Calcom.Burst, 10)

	setDefault(&c.Schedule.DayStart, domain.DefaultDayStart)
	setDefault(&c.Schedule.DayEnd, domain.DefaultDayEnd)
	setDefault(&c.Schedule.SlotDurationMinutes, domain.DefaultSlotDurationMinutes)
	setDefault(&c.Schedule.RangeDays, domain.DefaultRangeDays)
	setDefault(&c.Schedule.DefaultTimeZone, domain.DefaultTimeZone)

	setDefault(&c.Cache.Addr, "localhost:6379")
	setDefault(&c.Cache.TTLSeconds, 60)
}

// applyEnv секреты из окружения перекрывают файл
func (c *Config) applyEnv() {
	if v := os.Getenv("CALCOM_API_KEY"); v != "" {
		c.Calcom.APIKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Password = v
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Calcom.RequestsPerSecond <= 0 || c.Calcom.Burst <= 0 {
		return fmt.Errorf("%w: calcom.requests_per_second and calcom.burst must be positive", ErrInvalidConfig)
	}

	start, err := types.NewTimeStringFromString(c.Schedule.DayStart)
	if err != nil {
		return fmt.Errorf("%w: schedule.day_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.Schedule.DayEnd)
	if err != nil {
		return fmt.Errorf("%w: schedule.day_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: schedule.day_start must be before schedule.day_end", ErrInvalidConfig)
	}
	if c.Schedule.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.Schedule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: schedule.slot_duration_minutes=%d", ErrInvalidConfig, c.Schedule.SlotDurationMinutes)
	}
	if c.Schedule.RangeDays < 1 || c.Schedule.RangeDays > domain.MaxRangeDays {
		return fmt.Errorf("%w: schedule.range_days must be between 1 and %d", ErrInvalidConfig, domain.MaxRangeDays)
	}
	if _, err := time.LoadLocation(c.Schedule.DefaultTimeZone); err != nil {
		return fmt.Errorf("%w: schedule.default_timezone: %v", ErrInvalidConfig, err)
	}
	if c.Cache.Enabled && c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
