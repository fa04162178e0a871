package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamFetch возвращается, когда Cal.com ответил ошибкой (без повторов)
	ErrUpstreamFetch = errors.New("failed to fetch availability from upstream")

	// ErrMalformedTimestamp возвращается, когда занятый интервал не удается разобрать
	ErrMalformedTimestamp = errors.New("upstream returned malformed busy interval")

	// ErrUnknownTimezone возвращается, когда часовой пояс из ответа Cal.com не найден
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
