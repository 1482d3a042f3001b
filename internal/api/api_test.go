package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medimart/medimart/internal/model"
	"github.com/medimart/medimart/internal/session"
	"github.com/medimart/medimart/internal/transport"
	transportConfig "github.com/medimart/medimart/internal/transport/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*transport.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := transport.NewClient(transportConfig.Config{
		BaseAddr: srv.URL,
		Timeout:  2 * time.Second,
	}, session.NewMemoryStorage(), nil, nil, zap.NewNop())
	return client, srv
}

func TestCustomerNormalization(t *testing.T) {
	// бэкенд не прислал ключ pharmacies — на выходе пустой срез, не nil
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/customer/pharmacies", r.URL.Path)
		w.Write([]byte(`{"message":"ok"}`))
	})

	pharmacies, err := NewCustomer(client).Pharmacies(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pharmacies)
	require.Empty(t, pharmacies)
}

func TestCustomerMedicinesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/customer/medicines", r.URL.Path)
		require.Equal(t, "head ache", r.URL.Query().Get("search"))
		w.Write([]byte(`{"medicines":[{"medicineName":"Aspirin","sellingPrice":12.5,"stock":4}]}`))
	})

	medicines, err := NewCustomer(client).Medicines(context.Background(), "head ache")
	require.NoError(t, err)
	require.Len(t, medicines, 1)
	require.Equal(t, "Aspirin", medicines[0].MedicineName)
}

func TestAuthLoginEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"message":"welcome","token":"abc","user":{"_id":"u1","accountType":"Vendor"}}`))
	})

	result, err := NewAuth(client).Login(context.Background(), "v@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "abc", result.Token)
	require.Equal(t, model.RoleVendor, result.User.AccountType)
}

func TestRegisterValidation(t *testing.T) {
	// невалидная форма не доходит до сети
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := NewAuth(client).Register(context.Background(), RegisterRequest{
		Name:            "Ann",
		Email:           "not-an-email",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AccountType:     model.RoleCustomer,
	})
	require.Error(t, err)
	require.False(t, called)

	// продавец без данных аптеки тоже отклоняется
	err = NewAuth(client).Register(context.Background(), RegisterRequest{
		Name:            "Bob",
		Email:           "bob@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AccountType:     model.RoleVendor,
	})
	require.Error(t, err)
	require.False(t, called)
}

func TestVendorUpdateStatusBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/vendor/orders/o1/status", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"message":"updated"}`))
	})

	err := NewVendor(client).UpdateOrderStatus(context.Background(), "o1", model.OrderStatusConfirmed)
	require.NoError(t, err)
}

func TestAdminDashboard(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/dashboard", r.URL.Path)
		w.Write([]byte(`{"dashboard":{"totalUsers":10,"totalOrders":3,"pendingPharmacies":2}}`))
	})

	dashboard, err := NewAdmin(client).Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, dashboard.TotalUsers)
	require.Equal(t, 2, dashboard.PendingPharmacies)
}

func TestVolunteerDeliveries(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/volunteer/deliveries", r.URL.Path)
		w.Write([]byte(`{"orders":null}`))
	})

	deliveries, err := NewVolunteer(client).MyDeliveries(context.Background())
	require.NoError(t, err)
	require.NotNil(t, deliveries)
	require.Empty(t, deliveries)
}
