package state

import (
	"context"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/session"
)

type Auth struct {
	slice
	api      api.Auth
	manager  *session.Manager
	notifier Notifier
}

func NewAuth(authAPI api.Auth, manager *session.Manager, notifier Notifier) *Auth {
	return &Auth{
		api:      authAPI,
		manager:  manager,
		notifier: notifier,
	}
}

// InitializeAuth — синхронное восстановление сессии при старте
func (a *Auth) InitializeAuth() model.Session {
	return a.manager.InitializeAuth()
}

func (a *Auth) Session() model.Session {
	return a.manager.Session()
}

func (a *Auth) Login(ctx context.Context, email string, password string) error {
	id := a.begin()
	result, err := a.api.Login(ctx, email, password)
	if err == nil {
		err = a.manager.SetSession(result.Token, result.User)
	}
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Login successful")
	return nil
}

func (a *Auth) Register(ctx context.Context, req api.RegisterRequest) error {
	id := a.begin()
	err := a.api.Register(ctx, req)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Registration successful")
	return nil
}

func (a *Auth) ChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	id := a.begin()
	err := a.api.ChangePassword(ctx, oldPassword, newPassword)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Password changed")
	return nil
}

// Logout: silent=true — вариант для принудительного разлогина
// из HTTP-слоя, без уведомления
func (a *Auth) Logout(silent bool) {
	a.manager.Logout()
	if !silent {
		a.notifier.Success("Logged out")
	}
}

// HandleAuthFailure реализует transport.AuthFailureHandler
func (a *Auth) HandleAuthFailure() {
	a.Logout(true)
}
