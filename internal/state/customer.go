package state

import (
	"context"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/model"
)

type Customer struct {
	slice
	api      api.Customer
	notifier Notifier

	pharmacies []model.Pharmacy
	medicines  []model.Medicine
	orders     []model.Order
	current    *model.Order
}

func NewCustomer(customerAPI api.Customer, notifier Notifier) *Customer {
	return &Customer{
		api:      customerAPI,
		notifier: notifier,
	}
}

func (c *Customer) FetchPharmacies(ctx context.Context) error {
	id := c.begin()
	pharmacies, err := c.api.Pharmacies(ctx)
	c.settle(id, err, func() { c.pharmacies = pharmacies })

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (c *Customer) SearchMedicines(ctx context.Context, search string) error {
	id := c.begin()
	medicines, err := c.api.Medicines(ctx, search)
	c.settle(id, err, func() { c.medicines = medicines })

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (c *Customer) FetchOrders(ctx context.Context) error {
	id := c.begin()
	orders, err := c.api.Orders(ctx)
	c.settle(id, err, func() { c.orders = orders })

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	return nil
}

// TrackOrder загружает один заказ для экрана отслеживания
func (c *Customer) TrackOrder(ctx context.Context, orderID string) error {
	id := c.begin()
	order, err := c.api.Order(ctx, orderID)
	c.settle(id, err, func() { c.current = &order })

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	return nil
}

// PlaceOrder оформляет заказ; после успеха список перечитывается
// заново, оптимистичных слияний нет
func (c *Customer) PlaceOrder(ctx context.Context, req api.PlaceOrderRequest) error {
	id := c.begin()
	order, err := c.api.PlaceOrder(ctx, req)
	c.settle(id, err, func() { c.current = &order })

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	c.notifier.Success("Order placed")
	return c.FetchOrders(ctx)
}

func (c *Customer) CancelOrder(ctx context.Context, orderID string) error {
	id := c.begin()
	err := c.api.CancelOrder(ctx, orderID)
	c.settle(id, err, nil)

	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}
	c.notifier.Success("Order cancelled")
	return c.FetchOrders(ctx)
}

func (c *Customer) Pharmacies() []model.Pharmacy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Pharmacy(nil), c.pharmacies...)
}

func (c *Customer) Medicines() []model.Medicine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Medicine(nil), c.medicines...)
}

func (c *Customer) Orders() []model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Order(nil), c.orders...)
}

func (c *Customer) CurrentOrder() *model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	order := *c.current
	return &order
}
