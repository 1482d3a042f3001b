package cart

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/theplant/luhn"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/model"
)

var ErrCardIncorrect = errors.New("card number is invalid")

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

// Locator отдаёт текущие координаты клиента (геолокация платформы)
type Locator interface {
	Current(ctx context.Context) (model.Coordinates, error)
}

type CheckoutForm struct {
	DeliveryType  model.DeliveryType `validate:"required,oneof=delivery pickup"`
	Address       string             `validate:"required_if=DeliveryType delivery"`
	Phone         string             `validate:"required,min=7"`
	PaymentMethod PaymentMethod      `validate:"required,oneof=cod card"`
	CardNumber    string             `validate:"required_if=PaymentMethod card"`
}

var checkoutValidate = validator.New()

// Checkout валидирует форму и собирает заказы, по одному на аптеку.
// Координаты запрашиваются только для доставки на дом; сбой геолокации
// не блокирует оформление — заказ уходит без координат
func (c *Cart) Checkout(ctx context.Context, form CheckoutForm, locator Locator) ([]api.PlaceOrderRequest, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := checkoutValidate.Struct(form); err != nil {
		return nil, err
	}
	if form.PaymentMethod == PaymentCard {
		if err := validateCard(form.CardNumber); err != nil {
			return nil, err
		}
	}

	var location *model.Coordinates
	if form.DeliveryType == model.DeliveryTypeDelivery && locator != nil {
		if coords, err := locator.Current(ctx); err == nil {
			location = &coords
		}
	}

	// группировка по аптекам с сохранением порядка корзины
	var pharmacyIDs []string
	byPharmacy := make(map[string]*api.PlaceOrderRequest)
	for _, item := range items {
		req, ok := byPharmacy[item.Pharmacy.ID]
		if !ok {
			req = &api.PlaceOrderRequest{
				PharmacyID:    item.Pharmacy.ID,
				DeliveryType:  form.DeliveryType,
				Address:       form.Address,
				Phone:         form.Phone,
				PaymentMethod: string(form.PaymentMethod),
				Location:      location,
			}
			byPharmacy[item.Pharmacy.ID] = req
			pharmacyIDs = append(pharmacyIDs, item.Pharmacy.ID)
		}
		req.Items = append(req.Items, api.PlaceOrderItem{
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			Price:        item.Price,
		})
	}

	requests := make([]api.PlaceOrderRequest, 0, len(pharmacyIDs))
	for _, id := range pharmacyIDs {
		requests = append(requests, *byPharmacy[id])
	}
	return requests, nil
}

// Проверка номера карты по алгоритму Луна.
// Верхняя граница 18 цифр: номер длиннее не влезает в int64
func validateCard(number string) error {
	digits := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	if len(digits) < 12 || len(digits) > 18 {
		return ErrCardIncorrect
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return ErrCardIncorrect
	}
	if !luhn.Valid(value) {
		return ErrCardIncorrect
	}
	return nil
}
