package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidBody    = "некорректное тело запроса"
	msgConfigNotFound = "конфигурация не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/users/{username}/schedule-config
// Создает конфигурацию уровня (username, eventTypeId) или обновляет существующую
// 201 при создании, 200 при обновлении
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{username}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, created, err := h.service.Upsert(r.Context(), req.ToServiceRequest(username))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /users/{username}/schedule-config - Validation failed: username=%s, error=%v",
				username, err)
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("PUT /users/{username}/schedule-config - Config disappeared: username=%s", username)
			handlers.RespondNotFound(w, msgConfigNotFound)
		default:
			h.logger.Error("PUT /users/{username}/schedule-config - Failed to save config: username=%s, error=%v",
				username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /users/{username}/schedule-config - Config saved: username=%s, config_id=%d, created=%t",
		username, result.ID, created)
	handlers.RespondJSON(w, status, result)
}
