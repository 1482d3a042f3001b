package state

import (
	"context"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/model"
)

type Admin struct {
	slice
	api      api.Admin
	notifier Notifier

	dashboard         model.DashboardStats
	pendingPharmacies []model.Pharmacy
	pendingVolunteers []model.Volunteer
	users             []model.UserProfile
}

func NewAdmin(adminAPI api.Admin, notifier Notifier) *Admin {
	return &Admin{
		api:      adminAPI,
		notifier: notifier,
	}
}

func (a *Admin) FetchDashboard(ctx context.Context) error {
	id := a.begin()
	dashboard, err := a.api.Dashboard(ctx)
	a.settle(id, err, func() { a.dashboard = dashboard })

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (a *Admin) FetchPendingPharmacies(ctx context.Context) error {
	id := a.begin()
	pharmacies, err := a.api.PendingPharmacies(ctx)
	a.settle(id, err, func() { a.pendingPharmacies = pharmacies })

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (a *Admin) FetchPendingVolunteers(ctx context.Context) error {
	id := a.begin()
	volunteers, err := a.api.PendingVolunteers(ctx)
	a.settle(id, err, func() { a.pendingVolunteers = volunteers })

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (a *Admin) FetchUsers(ctx context.Context) error {
	id := a.begin()
	users, err := a.api.Users(ctx)
	a.settle(id, err, func() { a.users = users })

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	return nil
}

func (a *Admin) ApprovePharmacy(ctx context.Context, pharmacyID string) error {
	id := a.begin()
	err := a.api.ApprovePharmacy(ctx, pharmacyID)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Pharmacy approved")
	return a.FetchPendingPharmacies(ctx)
}

func (a *Admin) RejectPharmacy(ctx context.Context, pharmacyID string, reason string) error {
	id := a.begin()
	err := a.api.RejectPharmacy(ctx, pharmacyID, reason)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Pharmacy rejected")
	return a.FetchPendingPharmacies(ctx)
}

func (a *Admin) ApproveVolunteer(ctx context.Context, volunteerID string) error {
	id := a.begin()
	err := a.api.ApproveVolunteer(ctx, volunteerID)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Volunteer approved")
	return a.FetchPendingVolunteers(ctx)
}

func (a *Admin) RejectVolunteer(ctx context.Context, volunteerID string, reason string) error {
	id := a.begin()
	err := a.api.RejectVolunteer(ctx, volunteerID, reason)
	a.settle(id, err, nil)

	if err != nil {
		a.notifier.Error(err.Error())
		return err
	}
	a.notifier.Success("Volunteer rejected")
	return a.FetchPendingVolunteers(ctx)
}

func (a *Admin) Dashboard() model.DashboardStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dashboard
}

func (a *Admin) PendingPharmacies() []model.Pharmacy {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Pharmacy(nil), a.pendingPharmacies...)
}

func (a *Admin) PendingVolunteers() []model.Volunteer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Volunteer(nil), a.pendingVolunteers...)
}

func (a *Admin) Users() []model.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.UserProfile(nil), a.users...)
}
