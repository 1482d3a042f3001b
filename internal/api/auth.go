package api

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/transport"
)

// Модуль авторизации. Как и остальные модули api, без состояния:
// одна функция — один запрос, ни ретраев, ни кэша

type RegisterRequest struct {
	Name            string     `json:"name" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	Phone           string     `json:"phone,omitempty" validate:"omitempty,min=7"`
	Password        string     `json:"password" validate:"required,min=6"`
	ConfirmPassword string     `json:"confirmPassword" validate:"required,eqfield=Password"`
	AccountType     model.Role `json:"accountType" validate:"required,oneof=Customer Vendor Volunteer"`

	// данные аптеки — только при регистрации продавца
	PharmacyName string `json:"pharmacyName,omitempty" validate:"required_if=AccountType Vendor"`
	Address      string `json:"address,omitempty" validate:"required_if=AccountType Vendor"`

	// транспорт — только при регистрации волонтёра
	Vehicle string `json:"vehicle,omitempty" validate:"required_if=AccountType Volunteer"`
}

type LoginResult struct {
	Token string
	User  model.UserProfile
}

type Auth interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email string, password string) (LoginResult, error)
	ChangePassword(ctx context.Context, oldPassword string, newPassword string) error
}

type auth struct {
	client   *transport.Client
	validate *validator.Validate
}

func NewAuth(client *transport.Client) Auth {
	return &auth{
		client:   client,
		validate: validator.New(),
	}
}

func (a *auth) Register(ctx context.Context, req RegisterRequest) error {
	// валидация до запроса: в сеть с заведомо плохими данными не ходим
	if err := a.validate.Struct(req); err != nil {
		return err
	}
	return a.client.Post(ctx, "/api/auth/register", req, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    model.UserProfile `json:"user"`
}

func (a *auth) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	var resp loginResponse
	err := a.client.Post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: resp.Token, User: resp.User}, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (a *auth) ChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	req := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := a.validate.Struct(req); err != nil {
		return err
	}
	return a.client.Put(ctx, "/api/auth/change-password", req, nil)
}
