package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calcom"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidDateFrom    = "некорректный dateFrom, ожидается RFC 3339"
	msgInvalidDateTo      = "некорректный dateTo, ожидается RFC 3339"
	msgUpstreamFailed     = "не удалось получить доступность из Cal.com"
	msgMalformedUpstream  = "Cal.com вернул некорректные интервалы занятости"
	msgUnknownTimezone    = "Cal.com вернул неизвестный часовой пояс"

	apiKeyHeader = "X-Cal-Api-Key"
)

// UpstreamErrorResponse ответ при ошибке Cal.com
type UpstreamErrorResponse struct {
	Code           int    `json:"code"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	UpstreamBody   string `json:"upstreamBody,omitempty"`
}

// ParseAvailabilityQuery собирает запрос use case из query-параметров
// Поддерживаются имена параметров как в Cal.com (eventTypeId, apiKey), так и snake_case
// Ошибка содержит сообщение для клиента
func ParseAvailabilityQuery(r *http.Request) (*getAvailability.Request, error) {
	q := r.URL.Query()
	req := &getAvailability.Request{
		Username: q.Get("username"),
		APIKey:   firstNonEmpty(r.Header.Get(apiKeyHeader), q.Get("apiKey"), q.Get("api_key")),
		TimeZone: firstNonEmpty(q.Get("timeZone"), q.Get("time_zone")),
	}

	if s := EventTypeIDParam(r); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidEventTypeID)
		}
		req.EventTypeID = id
	}

	if s := q.Get("dateFrom"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, errors.New(msgInvalidDateFrom)
		}
		req.DateFrom = t
	}

	if s := q.Get("dateTo"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, errors.New(msgInvalidDateTo)
		}
		req.DateTo = t
	}

	return req, nil
}

// RespondAvailabilityError переводит ошибку use case в HTTP ответ и возвращает статус для логов
func RespondAvailabilityError(w http.ResponseWriter, err error) int {
	var statusErr *calcom.StatusError

	switch {
	case errors.Is(err, getAvailability.ErrInvalidInput):
		RespondBadRequest(w, err.Error())
		return http.StatusBadRequest

	case errors.As(err, &statusErr):
		RespondJSON(w, http.StatusBadGateway, UpstreamErrorResponse{
			Code:           http.StatusBadGateway,
			Message:        fmt.Sprintf("%s (status code: %d)", msgUpstreamFailed, statusErr.StatusCode),
			UpstreamStatus: statusErr.StatusCode,
			UpstreamBody:   statusErr.Body,
		})
		return http.StatusBadGateway

	case errors.Is(err, getAvailability.ErrUpstreamFetch):
		RespondError(w, http.StatusBadGateway, msgUpstreamFailed)
		return http.StatusBadGateway

	case errors.Is(err, getAvailability.ErrMalformedTimestamp):
		RespondError(w, http.StatusBadGateway, msgMalformedUpstream)
		return http.StatusBadGateway

	case errors.Is(err, getAvailability.ErrUnknownTimezone):
		RespondError(w, http.StatusBadGateway, msgUnknownTimezone)
		return http.StatusBadGateway

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

// EventTypeIDParam значение eventTypeId из query, поддерживается алиас event_type_id
func EventTypeIDParam(r *http.Request) string {
	q := r.URL.Query()
	return firstNonEmpty(q.Get("eventTypeId"), q.Get("event_type_id"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
