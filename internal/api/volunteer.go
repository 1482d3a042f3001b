package api

import (
	"context"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/transport"
)

type Volunteer interface {
	AvailableDeliveries(ctx context.Context) ([]model.Order, error)
	MyDeliveries(ctx context.Context) ([]model.Order, error)
	AcceptDelivery(ctx context.Context, id string) error
	UpdateDeliveryStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type volunteer struct {
	client *transport.Client
}

func NewVolunteer(client *transport.Client) Volunteer {
	return &volunteer{client: client}
}

func (v *volunteer) AvailableDeliveries(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := v.client.Get(ctx, "/api/volunteer/deliveries/available", &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []model.Order{}
	}
	return resp.Orders, nil
}

func (v *volunteer) MyDeliveries(ctx context.Context) ([]model.Order, error) {
	var resp ordersResponse
	if err := v.client.Get(ctx, "/api/volunteer/deliveries", &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []model.Order{}
	}
	return resp.Orders, nil
}

func (v *volunteer) AcceptDelivery(ctx context.Context, id string) error {
	return v.client.Post(ctx, "/api/volunteer/deliveries/"+id+"/accept", nil, nil)
}

func (v *volunteer) UpdateDeliveryStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return v.client.Put(ctx, "/api/volunteer/deliveries/"+id+"/status", updateStatusRequest{OrderStatus: status}, nil)
}
