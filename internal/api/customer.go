package api

import (
	"context"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/transport"
)

type PlaceOrderItem struct {
	MedicineName string  `json:"medicineName" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	PharmacyID    string             `json:"pharmacyId" validate:"required"`
	DeliveryType  model.DeliveryType `json:"deliveryType" validate:"required,oneof=delivery pickup"`
	Items         []PlaceOrderItem   `json:"items" validate:"required,min=1,dive"`
	Address       string             `json:"deliveryAddress,omitempty" validate:"required_if=DeliveryType delivery"`
	Phone         string             `json:"phone" validate:"required,min=7"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cod card"`
	Location      *model.Coordinates `json:"deliveryLocation,omitempty"`
}

type Customer interface {
	Pharmacies(ctx context.Context) ([]model.Pharmacy, error)
	Medicines(ctx context.Context, search string) ([]model.Medicine, error)
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (model.Order, error)
	CancelOrder(ctx context.Context, id string) error
}

type customer struct {
	client   *transport.Client
	validate *validator.Validate
}

func NewCustomer(client *transport.Client) Customer {
	return &customer{
		client:   client,
		validate: validator.New(),
	}
}

type pharmaciesResponse struct {
	Message    string           `json:"message"`
	Pharmacies []model.Pharmacy `json:"pharmacies"`
}

func (c *customer) Pharmacies(ctx context.Context) ([]model.Pharmacy, error) {
	var resp pharmaciesResponse
	if err := c.client.Get(ctx, "/api/customer/pharmacies", &resp); err != nil {
		return nil, err
	}
	// нормализация на границе: срезы не бывают nil
	if resp.Pharmacies == nil {
		resp.Pharmacies = []model.Pharmacy{}
	}
	return resp.Pharmacies, nil
}

type medicinesResponse struct {
	Message   string           `json:"message"`
	Medicines []model.Medicine `json:"medicines"`
}

func (c *customer) Medicines(ctx context.Context, search string) ([]model.Medicine, error) {
	path := "/api/customer/medicines"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var resp medicinesResponse
	if err := c.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Medicines == nil {
		resp.Medicines = []model.Medicine{}
	}
	return resp.Medicines, nil
}

type orderResponse struct {
	Message string      `json:"message"`
	Order   model.Order `json:"order"`
}

type ordersResponse struct {
	Message string        `json:"message"`
	Orders  []model.Order `json:"orders"`
}

func (c *customer) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (model.Order, error) {
	if err := c.validate.Struct(req); err != nil {
		return model.Order{}, err
	}

	var resp orderResponse
	if err := c.client.Post(ctx, "/api/customer/orders", req, &resp); err != nil {
		return model.Order{}, err
	}
	return resp.Order, nil
}

func (c *customer) Orders(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := c.client.Get(ctx, "/api/customer/orders", &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []model.Order{}
	}
	return resp.Orders, nil
}

func (c *customer) Order(ctx context.Context, id string) (model.Order, error) {
	var resp orderResponse
	if err := c.client.Get(ctx, "/api/customer/orders/"+id, &resp); err != nil {
		return model.Order{}, err
	}
	return resp.Order, nil
}

func (c *customer) CancelOrder(ctx context.Context, id string) error {
	return c.client.Put(ctx, "/api/customer/orders/"+id+"/cancel", nil, nil)
}
