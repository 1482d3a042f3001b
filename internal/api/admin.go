package api

import (
	"context"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/transport"
)

type Admin interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
	PendingPharmacies(ctx context.Context) ([]model.Pharmacy, error)
	PendingVolunteers(ctx context.Context) ([]model.Volunteer, error)
	ApprovePharmacy(ctx context.Context, id string) error
	RejectPharmacy(ctx context.Context, id string, reason string) error
	ApproveVolunteer(ctx context.Context, id string) error
	RejectVolunteer(ctx context.Context, id string, reason string) error
	Users(ctx context.Context) ([]model.UserProfile, error)
}

type admin struct {
	client *transport.Client
}

func NewAdmin(client *transport.Client) Admin {
	return &admin{client: client}
}

type dashboardResponse struct {
	Message   string               `json:"message"`
	Dashboard model.DashboardStats `json:"dashboard"`
}

func (a *admin) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	var resp dashboardResponse
	if err := a.client.Get(ctx, "/api/admin/dashboard", &resp); err != nil {
		return model.DashboardStats{}, err
	}
	return resp.Dashboard, nil
}

func (a *admin) PendingPharmacies(ctx context.Context) ([]model.Pharmacy, error) {
	var resp pharmaciesResponse
	if err := a.client.Get(ctx, "/api/admin/pharmacies/pending", &resp); err != nil {
		return nil, err
	}
	if resp.Pharmacies == nil {
		resp.Pharmacies = []model.Pharmacy{}
	}
	return resp.Pharmacies, nil
}

type volunteersResponse struct {
	Message    string            `json:"message"`
	Volunteers []model.Volunteer `json:"volunteers"`
}

func (a *admin) PendingVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	var resp volunteersResponse
	if err := a.client.Get(ctx, "/api/admin/volunteers/pending", &resp); err != nil {
		return nil, err
	}
	if resp.Volunteers == nil {
		resp.Volunteers = []model.Volunteer{}
	}
	return resp.Volunteers, nil
}

func (a *admin) ApprovePharmacy(ctx context.Context, id string) error {
	return a.client.Put(ctx, "/api/admin/pharmacies/"+id+"/approve", nil, nil)
}

type rejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

func (a *admin) RejectPharmacy(ctx context.Context, id string, reason string) error {
	return a.client.Put(ctx, "/api/admin/pharmacies/"+id+"/reject", rejectRequest{RejectionReason: reason}, nil)
}

func (a *admin) ApproveVolunteer(ctx context.Context, id string) error {
	return a.client.Put(ctx, "/api/admin/volunteers/"+id+"/approve", nil, nil)
}

func (a *admin) RejectVolunteer(ctx context.Context, id string, reason string) error {
	return a.client.Put(ctx, "/api/admin/volunteers/"+id+"/reject", rejectRequest{RejectionReason: reason}, nil)
}

type usersResponse struct {
	Message string              `json:"message"`
	Users   []model.UserProfile `json:"users"`
}

func (a *admin) Users(ctx context.Context) ([]model.UserProfile, error) {
	var resp usersResponse
	if err := a.client.Get(ctx, "/api/admin/users", &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []model.UserProfile{}
	}
	return resp.Users, nil
}
