package state

import (
	"sync"

	"github.com/google/uuid"
)

// Notifier — транзиентные уведомления пользователю.
// Политика: любая ошибка операции уведомляет; успех уведомляет
// только для мутирующих операций, чтение молчит
type Notifier interface {
	Success(message string)
	Error(message string)
}

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// slice — общая часть среза состояния: один флаг загрузки
// и одно поле ошибки на срез. Параллельные операции их разделяют,
// побеждает последняя завершившаяся; идентификатор запроса
// делает это поведение явным, а не случайным
type slice struct {
	mu            sync.Mutex
	loading       bool
	err           string
	lastRequestID string
}

// begin — фаза pending: loading=true, ошибка сброшена
func (s *slice) begin() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
	s.lastRequestID = id
	return id
}

// settle — фаза fulfilled/rejected; merge выполняется под тем же замком
func (s *slice) settle(id string, opErr error, merge func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastRequestID = id
	if opErr != nil {
		s.err = opErr.Error()
		return
	}
	s.err = ""
	if merge != nil {
		merge()
	}
}

func (s *slice) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *slice) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *slice) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestID
}
