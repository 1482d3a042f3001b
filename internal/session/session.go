package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/medimart/medimart/internal/model"
)

// CookieMirror дублирует токен в cookie HTTP-клиента:
// часть эндпоинтов бэкенда авторизуется по cookie, а не по заголовку
type CookieMirror interface {
	SetAuthCookie(token string)
	ClearAuthCookie()
}

// Manager владеет состоянием сессии и её персистентной копией
type Manager struct {
	storage Storage
	cookies CookieMirror
	zaplog  *zap.Logger

	mu      sync.Mutex
	session model.Session
}

func NewManager(storage Storage, cookies CookieMirror, zaplog *zap.Logger) *Manager {
	return &Manager{
		storage: storage,
		cookies: cookies,
		zaplog:  zaplog,
	}
}

// InitializeAuth восстанавливает сессию из хранилища при старте.
// Идемпотентна: повторный вызов с теми же данными даёт то же состояние.
// Если токен или профиль отсутствуют либо профиль не парсится,
// сессия и хранилище очищаются целиком
func (m *Manager) InitializeAuth() model.Session {
	token, okToken := m.storage.Get(KeyToken)
	userRaw, okUser := m.storage.Get(KeyUser)
	if !okToken || !okUser || token == "" {
		m.clear()
		return m.Session()
	}

	var user model.UserProfile
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		// повреждённый профиль — чистим всё
		m.zaplog.Warn("stored user profile is not valid JSON, clearing session",
			zap.Error(err))
		m.clear()
		return m.Session()
	}

	// Просроченный токен не повод для разлогина на клиенте:
	// окончательное слово за бэкендом (классификация 401 в transport)
	if exp, err := TokenExpiry(token); err == nil && exp.Before(time.Now()) {
		m.zaplog.Warn("stored token looks expired",
			zap.Time("expiry", exp))
	}

	m.mu.Lock()
	m.session = model.Session{
		User:            &user,
		Token:           token,
		IsAuthenticated: true,
	}
	m.mu.Unlock()
	m.cookies.SetAuthCookie(token)

	return m.Session()
}

// SetSession устанавливает сессию после логина/регистрации
func (m *Manager) SetSession(token string, user model.UserProfile) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.storage.Set(KeyToken, token); err != nil {
		return err
	}
	if err := m.storage.Set(KeyUser, string(userRaw)); err != nil {
		return err
	}

	m.mu.Lock()
	m.session = model.Session{
		User:            &user,
		Token:           token,
		IsAuthenticated: true,
	}
	m.mu.Unlock()
	m.cookies.SetAuthCookie(token)

	return nil
}

// Logout очищает сессию, хранилище и cookie
func (m *Manager) Logout() {
	m.clear()
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.session = model.Session{}
	m.mu.Unlock()

	_ = m.storage.Delete(KeyToken)
	_ = m.storage.Delete(KeyUser)
	m.cookies.ClearAuthCookie()
}

func (m *Manager) Session() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	return s
}

// TokenExpiry читает срок действия из claims без проверки подписи.
// Подпись проверяет бэкенд, клиенту ключ недоступен
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), nil
	case json.Number:
		v, err := exp.Int64()
		if err != nil {
			return time.Time{}, jwt.ErrTokenInvalidClaims
		}
		return time.Unix(v, 0), nil
	}
	return time.Time{}, jwt.ErrTokenInvalidClaims
}
