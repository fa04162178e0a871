package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "time/tzdata"

	deleteScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_schedule_config"
	exportAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/export_availability"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_schedule_config"
	updateScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	availabilityCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/availability"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	calcomClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/calcom"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()
	log = log.With("service", cfg.Metrics.ServiceName)

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозиторий настроек расписания (с метриками или без)
	var scheduleRepository *scheduleRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
	}

	// Кэш ответов Cal.com (опционально)
	var cache getAvailabilityUC.AvailabilityCache = availabilityCache.NopCache{}
	if cfg.Cache.Enabled {
		redisClient, err := availabilityCache.NewRedisClient(context.Background(), cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		cache = availabilityCache.NewCache(redisClient, cfg.Cache.TTL())
		log.Info("Availability cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
	}

	// Клиент Cal.com
	calcom := calcomClient.NewClient(
		cfg.Calcom.BaseURL,
		time.Duration(cfg.Calcom.Timeout)*time.Second,
		cfg.Calcom.RequestsPerSecond,
		cfg.Calcom.Burst,
		log,
	)
	if cfg.Metrics.Enabled {
		calcom.SetObserver(metricsCollector)
	}
	log.Info("Cal.com client initialized (url=%s, timeout=%ds, rps=%.1f)",
		cfg.Calcom.BaseURL, cfg.Calcom.Timeout, cfg.Calcom.RequestsPerSecond)
	if cfg.Calcom.APIKey == "" {
		log.Warn("Cal.com API key is not configured, requests must pass apiKey explicitly")
	}

	scheduleDefaults := cfg.Schedule.Defaults()

	// Инициализируем сервисы и use cases
	scheduleSvc := scheduleService.NewService(scheduleRepository, scheduleDefaults, log)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		calcom,
		scheduleRepository,
		cache,
		getAvailabilityUC.RequestDefaults{
			Username:    cfg.Calcom.DefaultUsername,
			EventTypeID: cfg.Calcom.DefaultEventTypeID,
			APIKey:      cfg.Calcom.APIKey,
		},
		scheduleDefaults,
		log,
	)
	if cfg.Metrics.Enabled {
		getAvailabilityUseCase.SetCacheObserver(metricsCollector)
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	exportAvailability := exportAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, scheduleDefaults, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	deleteScheduleConfig := deleteScheduleConfigHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Свободное время ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability.ics", exportAvailability.Handle).Methods(http.MethodGet)

	// --- Настройки расписания пользователя ---
	api.HandleFunc("/users/{username}/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)
	api.HandleFunc("/users/{username}/schedule-config", deleteScheduleConfig.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
