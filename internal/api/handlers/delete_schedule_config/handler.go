package delete_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgConfigNotFound     = "конфигурация не найдена"
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

// Handle DELETE /api/v1/users/{username}/schedule-config
// Query params: eventTypeId (без него удаляется общая настройка пользователя)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	eventTypeID, err := handlers.ParseOptionalInt64(handlers.EventTypeIDParam(r))
	if err != nil {
		h.logger.Warn("DELETE /users/{username}/schedule-config - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	if err := h.service.Delete(r.Context(), username, eventTypeID); err != nil {
		if errors.Is(err, schedule.ErrConfigNotFound) {
			h.logger.Warn("DELETE /users/{username}/schedule-config - Config not found: username=%s", username)
			handlers.RespondNotFound(w, msgConfigNotFound)
			return
		}
		h.logger.Error("DELETE /users/{username}/schedule-config - Failed to delete config: username=%s, error=%v",
			username, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /users/{username}/schedule-config - Config deleted: username=%s, event_type=%v",
		username, eventTypeID)
	w.WriteHeader(http.StatusNoContent)
}
