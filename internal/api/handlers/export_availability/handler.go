package export_availability

import (
	"bytes"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const contentTypeCalendar = "text/calendar; charset=utf-8"

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
	now     func() time.Time
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/availability.ics
// Принимает те же параметры, что и GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.ParseAvailabilityQuery(r)
	if err != nil {
		h.logger.Warn("GET /availability.ics - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /availability.ics - Failed: username=%s, status=%d, error=%v", req.Username, status, err)
		} else {
			h.logger.Warn("GET /availability.ics - Rejected: username=%s, error=%v", req.Username, err)
		}
		return
	}

	cal := BuildCalendar(result, h.now())

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		h.logger.Error("GET /availability.ics - Failed to encode calendar: username=%s, error=%v", result.Username, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability.ics - Calendar exported: username=%s, events=%d", result.Username, len(cal.Children))
	w.Header().Set("Content-Disposition", `attachment; filename="availability.ics"`)
	handlers.RespondText(w, http.StatusOK, contentTypeCalendar, buf.Bytes())
}
