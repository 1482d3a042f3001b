package state

import (
	"context"
	"errors"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/lifecycle"
	"github.com/medimart/medimart/internal/model"
)

var ErrTransitionNotAllowed = errors.New("status transition not allowed")

type Vendor struct {
	slice
	api      api.Vendor
	notifier Notifier

	pharmacy  model.Pharmacy
	inventory []model.InventoryItem
	orders    []model.Order
}

func NewVendor(vendorAPI api.Vendor, notifier Notifier) *Vendor {
	return &Vendor{
		api:      vendorAPI,
		notifier: notifier,
	}
}

func (v *Vendor) FetchPharmacy(ctx context.Context) error {
	id := v.begin()
	pharmacy, err := v.api.Pharmacy(ctx)
	v.settle(id, err, func() { v.pharmacy = pharmacy })

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (v *Vendor) FetchInventory(ctx context.Context) error {
	id := v.begin()
	inventory, err := v.api.Inventory(ctx)
	v.settle(id, err, func() { v.inventory = inventory })

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (v *Vendor) AddMedicine(ctx context.Context, req api.MedicineRequest) error {
	id := v.begin()
	err := v.api.AddMedicine(ctx, req)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Medicine added")
	return v.FetchInventory(ctx)
}

func (v *Vendor) UpdateMedicine(ctx context.Context, medicineID string, req api.MedicineRequest) error {
	id := v.begin()
	err := v.api.UpdateMedicine(ctx, medicineID, req)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Medicine updated")
	return v.FetchInventory(ctx)
}

func (v *Vendor) DeleteMedicine(ctx context.Context, medicineID string) error {
	id := v.begin()
	err := v.api.DeleteMedicine(ctx, medicineID)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Medicine removed")
	return v.FetchInventory(ctx)
}

// AdjustStock: абсолютное значение или дельта, см. api.AdjustStockRequest
func (v *Vendor) AdjustStock(ctx context.Context, medicineID string, req api.AdjustStockRequest) error {
	id := v.begin()
	err := v.api.AdjustStock(ctx, medicineID, req)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Stock updated")
	return v.FetchInventory(ctx)
}

func (v *Vendor) FetchOrders(ctx context.Context) error {
	id := v.begin()
	orders, err := v.api.Orders(ctx)
	v.settle(id, err, func() { v.orders = orders })

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	return nil
}

// UpdateOrderStatus сверяет переход с центральной таблицей
// до запроса: заведомо недопустимый переход в сеть не уходит
func (v *Vendor) UpdateOrderStatus(ctx context.Context, orderID string, to model.OrderStatus) error {
	if order, ok := v.findOrder(orderID); ok {
		if !lifecycle.CanTransition(order.Status, to, order.DeliveryType) {
			v.notifier.Error(ErrTransitionNotAllowed.Error())
			return ErrTransitionNotAllowed
		}
	}

	id := v.begin()
	err := v.api.UpdateOrderStatus(ctx, orderID, to)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Order status updated")
	return v.FetchOrders(ctx)
}

func (v *Vendor) findOrder(orderID string) (model.Order, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, order := range v.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return model.Order{}, false
}

func (v *Vendor) Pharmacy() model.Pharmacy {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pharmacy
}

func (v *Vendor) Inventory() []model.InventoryItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.InventoryItem(nil), v.inventory...)
}

func (v *Vendor) Orders() []model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Order(nil), v.orders...)
}
