package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const (
	formatJSON = "json"
	formatText = "text"

	msgInvalidFormat = "некорректный формат, допустимо: json, text"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: username, eventTypeId, apiKey, dateFrom, dateTo, timeZone, format (json|text)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatText {
		h.logger.Warn("GET /availability - Invalid format: %q", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	req, err := handlers.ParseAvailabilityQuery(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		status := handlers.RespondAvailabilityError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /availability - Failed: username=%s, status=%d, error=%v", req.Username, status, err)
		} else {
			h.logger.Warn("GET /availability - Rejected: username=%s, error=%v", req.Username, err)
		}
		return
	}

	h.logger.Info("GET /availability - Availability computed: username=%s, days=%d, format=%s",
		result.Username, len(result.Days), format)

	if format == formatText {
		handlers.RespondText(w, http.StatusOK, "text/plain; charset=utf-8", []byte(RenderText(result)))
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
