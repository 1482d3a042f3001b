package transport

import "errors"

const fallbackMessage = "Something went wrong."

type Kind int

const (
	// KindAuth — настоящая ошибка авторизации, сессия снесена
	KindAuth Kind = iota
	// KindTransient — 401 от сбоя валидации на бэкенде, сессия цела
	KindTransient
	// KindHTTP — прочие ошибочные статусы
	KindHTTP
	// KindTimeout — ответа не было, клиентский таймаут
	KindTimeout
	// KindNetwork — ответа не было, прочие сетевые сбои
	KindNetwork
	// KindDecode — ответ пришёл, но тело не разобралось
	KindDecode
)

// APIError — нормализованная ошибка HTTP-слоя
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorKind достаёт вид ошибки; для не-APIError отвечает KindNetwork
func ErrorKind(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}
