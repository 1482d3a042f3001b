package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medimart/medimart/internal/routeguard"
	"github.com/medimart/medimart/internal/session"
	"github.com/medimart/medimart/internal/transport/config"
)

const authCookieName = "token"

// Navigator — навигация клиента (у SPA это роутер браузера)
type Navigator interface {
	CurrentRoute() string
	Navigate(route string)
}

// AuthFailureHandler вызывается при настоящей ошибке авторизации.
// Обработчик не должен показывать уведомление ("тихий" разлогин)
type AuthFailureHandler interface {
	HandleAuthFailure()
}

// Client — обёртка над resty: подстановка токена,
// классификация ошибок, нормализованный APIError.
// Все зависимости передаются при создании, глобального состояния нет
type Client struct {
	resty     *resty.Client
	storage   session.Storage
	handler   AuthFailureHandler
	navigator Navigator
	zaplog    *zap.Logger
	failures  *failureLog
}

func NewClient(cfg config.Config, storage session.Storage, handler AuthFailureHandler, navigator Navigator, zaplog *zap.Logger) *Client {
	client := &Client{
		storage:   storage,
		handler:   handler,
		navigator: navigator,
		zaplog:    zaplog,
		failures:  newFailureLog(failureLogCap),
	}

	r := resty.New().
		SetBaseURL(cfg.BaseAddr).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	// Подстановка bearer-токена в каждый запрос; зеркальная cookie
	// живёт на клиенте и обновляется менеджером сессии
	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := client.storage.Get(session.KeyToken); ok && token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	// Диагностика каждого ответа: метод, адрес, статус, длительность, размер
	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		client.zaplog.Debug("response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()),
			zap.Int("size", len(resp.Body())),
		)
		return nil
	})

	client.resty = r
	return client
}

// SetAuthCookie заменяет зеркальную cookie: resty.SetCookie только
// дописывает, поэтому без очистки повторный логин оставил бы
// в запросах токен прошлой сессии
func (c *Client) SetAuthCookie(token string) {
	c.ClearAuthCookie()
	c.resty.SetCookie(&http.Cookie{Name: authCookieName, Value: token})
}

func (c *Client) ClearAuthCookie() {
	cookies := c.resty.Cookies[:0]
	for _, cookie := range c.resty.Cookies {
		if cookie.Name != authCookieName {
			cookies = append(cookies, cookie)
		}
	}
	c.resty.Cookies = cookies
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	requestID := uuid.NewString()

	req := c.resty.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		// ответа нет: таймаут или сеть
		return c.fail(requestID, path, c.noResponseError(err))
	}

	if resp.IsSuccess() {
		if out != nil {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return c.fail(requestID, path, &APIError{
					Kind:       KindDecode,
					StatusCode: resp.StatusCode(),
					Message:    fallbackMessage,
				})
			}
		}
		return nil
	}

	return c.fail(requestID, path, c.errorFromResponse(resp))
}

func (c *Client) noResponseError(err error) *APIError {
	var urlErr *url.Error
	if (errors.As(err, &urlErr) && urlErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "request timed out"}
	}
	return &APIError{Kind: KindNetwork, Message: "network error"}
}

func (c *Client) errorFromResponse(resp *resty.Response) *APIError {
	message := messageFromBody(resp.Body())
	if message == "" {
		message = fallbackMessage
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		if isAuthFault(message) {
			c.teardown()
			return &APIError{
				Kind:       KindAuth,
				StatusCode: resp.StatusCode(),
				Message:    message,
			}
		}
		// 401 от фонового сбоя валидации: сессию не трогаем
		return &APIError{
			Kind:       KindTransient,
			StatusCode: resp.StatusCode(),
			Message:    message,
		}
	}

	return &APIError{
		Kind:       KindHTTP,
		StatusCode: resp.StatusCode(),
		Message:    message,
	}
}

// teardown — принудительный разлогин по настоящей 401:
// чистим хранилище и cookie, дёргаем обработчик ровно один раз,
// уводим на логин, если мы ещё не там
func (c *Client) teardown() {
	_ = c.storage.Delete(session.KeyToken)
	_ = c.storage.Delete(session.KeyUser)
	c.ClearAuthCookie()

	if c.handler != nil {
		c.handler.HandleAuthFailure()
	}
	if c.navigator != nil && c.navigator.CurrentRoute() != routeguard.RouteLogin {
		c.navigator.Navigate(routeguard.RouteLogin)
	}
}

func (c *Client) fail(requestID string, path string, apiErr *APIError) error {
	_, hadToken := c.storage.Get(session.KeyToken)
	c.failures.add(FailureEntry{
		RequestID: requestID,
		URL:       path,
		Message:   apiErr.Message,
		HadToken:  hadToken,
	})

	c.zaplog.Debug("request failed",
		zap.String("request_id", requestID),
		zap.String("url", path),
		zap.String("message", apiErr.Message),
		zap.Bool("had_token", hadToken),
	)

	return apiErr
}

// Failures возвращает журнал последних сбоев (только диагностика)
func (c *Client) Failures() []FailureEntry {
	return c.failures.snapshot()
}

func messageFromBody(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// Список подстрок — контракт с текстами ошибок бэкенда.
// Не менять без согласования с бэкендом
var authFaultMarkers = []string{
	"expired",
	"invalid token",
	"malformed",
	"no token provided",
	"please login",
}

func isAuthFault(message string) bool {
	m := strings.ToLower(message)
	// "validating" означает сбой на стороне бэкенда, а не плохой токен
	if strings.Contains(m, "validating") {
		return false
	}
	for _, marker := range authFaultMarkers {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}
