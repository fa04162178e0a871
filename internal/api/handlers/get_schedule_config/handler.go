package get_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidUsername    = "некорректное имя пользователя"
)

type Handler struct {
	service  ScheduleService
	defaults domain.ScheduleDefaults
	logger   Logger
}

func NewHandler(service ScheduleService, defaults domain.ScheduleDefaults, logger Logger) *Handler {
	return &Handler{
		service:  service,
		defaults: defaults,
		logger:   logger,
	}
}

// Handle GET /api/v1/users/{username}/schedule-config
// Query params: eventTypeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	eventTypeID, err := handlers.ParseOptionalInt64(handlers.EventTypeIDParam(r))
	if err != nil {
		h.logger.Warn("GET /users/{username}/schedule-config - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	result, err := h.service.Get(r.Context(), username, eventTypeID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigNotFound):
			// Сохраненных настроек нет - отдаем значения по умолчанию
			h.logger.Info("GET /users/{username}/schedule-config - Config not found, returning defaults: username=%s",
				username)
			handlers.RespondJSON(w, http.StatusOK, GetDefaultConfigResponse(username, eventTypeID, h.defaults))
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /users/{username}/schedule-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUsername)
		default:
			h.logger.Error("GET /users/{username}/schedule-config - Failed to get config: username=%s, error=%v",
				username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{username}/schedule-config - Config retrieved: username=%s, config_id=%d, level=%s",
		username, result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
