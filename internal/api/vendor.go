package api

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/transport"
)

type MedicineRequest struct {
	MedicineName  string  `json:"medicineName" validate:"required"`
	PurchasePrice float64 `json:"purchasePrice" validate:"required,gt=0"`
	SellingPrice  float64 `json:"sellingPrice" validate:"required,gt=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
}

// AdjustStockRequest: либо абсолютное значение, либо дельта
type AdjustStockRequest struct {
	Stock *int `json:"stock,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

type Vendor interface {
	Pharmacy(ctx context.Context) (model.Pharmacy, error)
	Inventory(ctx context.Context) ([]model.InventoryItem, error)
	AddMedicine(ctx context.Context, req MedicineRequest) error
	UpdateMedicine(ctx context.Context, id string, req MedicineRequest) error
	DeleteMedicine(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) error
	Orders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type vendor struct {
	client   *transport.Client
	validate *validator.Validate
}

func NewVendor(client *transport.Client) Vendor {
	return &vendor{
		client:   client,
		validate: validator.New(),
	}
}

type pharmacyResponse struct {
	Message  string         `json:"message"`
	Pharmacy model.Pharmacy `json:"pharmacy"`
}

func (v *vendor) Pharmacy(ctx context.Context) (model.Pharmacy, error) {
	var resp pharmacyResponse
	if err := v.client.Get(ctx, "/api/vendor/pharmacy", &resp); err != nil {
		return model.Pharmacy{}, err
	}
	return resp.Pharmacy, nil
}

type inventoryResponse struct {
	Message   string                `json:"message"`
	Medicines []model.InventoryItem `json:"medicines"`
}

func (v *vendor) Inventory(ctx context.Context) ([]model.InventoryItem, error) {
	var resp inventoryResponse
	if err := v.client.Get(ctx, "/api/vendor/medicines", &resp); err != nil {
		return nil, err
	}
	if resp.Medicines == nil {
		resp.Medicines = []model.InventoryItem{}
	}
	return resp.Medicines, nil
}

func (v *vendor) AddMedicine(ctx context.Context, req MedicineRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return err
	}
	return v.client.Post(ctx, "/api/vendor/medicines", req, nil)
}

func (v *vendor) UpdateMedicine(ctx context.Context, id string, req MedicineRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return err
	}
	return v.client.Put(ctx, "/api/vendor/medicines/"+id, req, nil)
}

func (v *vendor) DeleteMedicine(ctx context.Context, id string) error {
	return v.client.Delete(ctx, "/api/vendor/medicines/"+id, nil)
}

func (v *vendor) AdjustStock(ctx context.Context, id string, req AdjustStockRequest) error {
	return v.client.Put(ctx, "/api/vendor/medicines/"+id+"/stock", req, nil)
}

func (v *vendor) Orders(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := v.client.Get(ctx, "/api/vendor/orders", &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []model.Order{}
	}
	return resp.Orders, nil
}

type updateStatusRequest struct {
	OrderStatus model.OrderStatus `json:"orderStatus"`
}

func (v *vendor) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return v.client.Put(ctx, "/api/vendor/orders/"+id+"/status", updateStatusRequest{OrderStatus: status}, nil)
}
