package state

import (
	"context"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/lifecycle"
	"github.com/medimart/medimart/internal/model"
)

type Volunteer struct {
	slice
	api      api.Volunteer
	notifier Notifier

	available  []model.Order
	deliveries []model.Order
}

func NewVolunteer(volunteerAPI api.Volunteer, notifier Notifier) *Volunteer {
	return &Volunteer{
		api:      volunteerAPI,
		notifier: notifier,
	}
}

func (v *Volunteer) FetchAvailable(ctx context.Context) error {
	id := v.begin()
	available, err := v.api.AvailableDeliveries(ctx)
	v.settle(id, err, func() { v.available = available })

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (v *Volunteer) FetchDeliveries(ctx context.Context) error {
	id := v.begin()
	deliveries, err := v.api.MyDeliveries(ctx)
	v.settle(id, err, func() { v.deliveries = deliveries })

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (v *Volunteer) AcceptDelivery(ctx context.Context, orderID string) error {
	id := v.begin()
	err := v.api.AcceptDelivery(ctx, orderID)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Delivery accepted")
	if err := v.FetchAvailable(ctx); err != nil {
		return err
	}
	return v.FetchDeliveries(ctx)
}

// UpdateDeliveryStatus — как у продавца, переход проверяется
// по центральной таблице до запроса
func (v *Volunteer) UpdateDeliveryStatus(ctx context.Context, orderID string, to model.OrderStatus) error {
	if order, ok := v.findDelivery(orderID); ok {
		if !lifecycle.CanTransition(order.Status, to, order.DeliveryType) {
			v.notifier.Error(ErrTransitionNotAllowed.Error())
			return ErrTransitionNotAllowed
		}
	}

	id := v.begin()
	err := v.api.UpdateDeliveryStatus(ctx, orderID, to)
	v.settle(id, err, nil)

	if err != nil {
		v.notifier.Error(err.Error())
		return err
	}
	v.notifier.Success("Delivery status updated")
	return v.FetchDeliveries(ctx)
}

func (v *Volunteer) findDelivery(orderID string) (model.Order, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, order := range v.deliveries {
		if order.ID == orderID {
			return order, true
		}
	}
	return model.Order{}, false
}

func (v *Volunteer) Available() []model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Order(nil), v.available...)
}

func (v *Volunteer) Deliveries() []model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Order(nil), v.deliveries...)
}
