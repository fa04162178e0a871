package calcom

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (запрос не отправлен или не выполнен)
	ErrInternal = errors.New("calcom client: internal error")

	// ErrUnexpectedStatus возвращается, когда Cal.com ответил не 200
	ErrUnexpectedStatus = errors.New("calcom client: unexpected status code")

	// ErrInvalidResponse возвращается при некорректном теле ответа
	ErrInvalidResponse = errors.New("calcom client: invalid response")

	// ErrMalformedTimestamp возвращается, когда время занятого интервала не удается разобрать
	ErrMalformedTimestamp = errors.New("calcom client: malformed timestamp")
)

// StatusError ответ Cal.com с неуспешным статус-кодом
// Тело ответа сохраняется как есть (с обрезкой до maxErrorBodyLength байт)
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
