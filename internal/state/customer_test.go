package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medimart/medimart/internal/api"
	"github.com/medimart/medimart/internal/model"
)

type fakeCustomerAPI struct {
	pharmaciesFn func(ctx context.Context) ([]model.Pharmacy, error)
	ordersFn     func(ctx context.Context) ([]model.Order, error)
	ordersCalls  int
	placeErr     error
}

func (f *fakeCustomerAPI) Pharmacies(ctx context.Context) ([]model.Pharmacy, error) {
	if f.pharmaciesFn != nil {
		return f.pharmaciesFn(ctx)
	}
	return []model.Pharmacy{}, nil
}

func (f *fakeCustomerAPI) Medicines(ctx context.Context, search string) ([]model.Medicine, error) {
	return []model.Medicine{}, nil
}

func (f *fakeCustomerAPI) PlaceOrder(ctx context.Context, req api.PlaceOrderRequest) (model.Order, error) {
	if f.placeErr != nil {
		return model.Order{}, f.placeErr
	}
	return model.Order{ID: "o1", Status: model.OrderStatusPending}, nil
}

func (f *fakeCustomerAPI) Orders(ctx context.Context) ([]model.Order, error) {
	f.ordersCalls++
	if f.ordersFn != nil {
		return f.ordersFn(ctx)
	}
	return []model.Order{}, nil
}

func (f *fakeCustomerAPI) Order(ctx context.Context, id string) (model.Order, error) {
	return model.Order{ID: id}, nil
}

func (f *fakeCustomerAPI) CancelOrder(ctx context.Context, id string) error {
	return nil
}

func TestCustomerFetch(t *testing.T) {
	customerAPI := &fakeCustomerAPI{
		pharmaciesFn: func(ctx context.Context) ([]model.Pharmacy, error) {
			return []model.Pharmacy{{ID: "ph1", Name: "Central"}}, nil
		},
	}
	notifier := &recordingNotifier{}
	customer := NewCustomer(customerAPI, notifier)

	err := customer.FetchPharmacies(context.Background())
	require.NoError(t, err)
	require.False(t, customer.Loading())
	require.Empty(t, customer.Err())
	require.Len(t, customer.Pharmacies(), 1)

	// чтение: успех без уведомления
	require.Empty(t, notifier.successes)
	require.Empty(t, notifier.errors)
}

func TestCustomerFetchFailure(t *testing.T) {
	customerAPI := &fakeCustomerAPI{
		pharmaciesFn: func(ctx context.Context) ([]model.Pharmacy, error) {
			return nil, errors.New("boom")
		},
	}
	notifier := &recordingNotifier{}
	customer := NewCustomer(customerAPI, notifier)

	err := customer.FetchPharmacies(context.Background())
	require.Error(t, err)
	require.False(t, customer.Loading())
	require.Equal(t, "boom", customer.Err())

	// ошибка чтения уведомляет
	require.Equal(t, []string{"boom"}, notifier.errors)
}

func TestCustomerLoadingLastWriteWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	first := true

	customerAPI := &fakeCustomerAPI{
		pharmaciesFn: func(ctx context.Context) ([]model.Pharmacy, error) {
			if first {
				first = false
				close(started)
				<-release
			}
			return []model.Pharmacy{}, nil
		},
	}
	customer := NewCustomer(customerAPI, &recordingNotifier{})

	// первая операция висит после фазы pending
	done := make(chan struct{})
	go func() {
		_ = customer.FetchPharmacies(context.Background())
		close(done)
	}()
	<-started
	require.True(t, customer.Loading())

	// вторая операция завершилась — флаг сброшен,
	// хотя первая ещё в полёте: побеждает последняя завершившаяся
	require.NoError(t, customer.FetchPharmacies(context.Background()))
	require.False(t, customer.Loading())

	close(release)
	<-done
	require.False(t, customer.Loading())
	require.Empty(t, customer.Err())
}

func TestCustomerPlaceOrder(t *testing.T) {
	customerAPI := &fakeCustomerAPI{
		ordersFn: func(ctx context.Context) ([]model.Order, error) {
			return []model.Order{{ID: "o1", Status: model.OrderStatusPending}}, nil
		},
	}
	notifier := &recordingNotifier{}
	customer := NewCustomer(customerAPI, notifier)

	err := customer.PlaceOrder(context.Background(), api.PlaceOrderRequest{
		PharmacyID:    "ph1",
		DeliveryType:  model.DeliveryTypePickup,
		Items:         []api.PlaceOrderItem{{MedicineName: "Paracetamol", Quantity: 1, Price: 45.50}},
		Phone:         "5551234567",
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	// мутация: уведомление об успехе и повторное чтение списка
	require.Equal(t, []string{"Order placed"}, notifier.successes)
	require.Equal(t, 1, customerAPI.ordersCalls)
	require.Len(t, customer.Orders(), 1)
	require.NotNil(t, customer.CurrentOrder())
}

func TestCustomerPlaceOrderFailure(t *testing.T) {
	customerAPI := &fakeCustomerAPI{placeErr: errors.New("out of stock")}
	notifier := &recordingNotifier{}
	customer := NewCustomer(customerAPI, notifier)

	err := customer.PlaceOrder(context.Background(), api.PlaceOrderRequest{})
	require.Error(t, err)
	require.Equal(t, "out of stock", customer.Err())
	require.Equal(t, []string{"out of stock"}, notifier.errors)
	// списки не перечитывались
	require.Equal(t, 0, customerAPI.ordersCalls)
}

func TestCustomerTrackOrder(t *testing.T) {
	customer := NewCustomer(&fakeCustomerAPI{}, &recordingNotifier{})

	require.NoError(t, customer.TrackOrder(context.Background(), "o42"))

	current := customer.CurrentOrder()
	require.NotNil(t, current)
	require.Equal(t, "o42", current.ID)
}

func TestCustomerRequestIDChanges(t *testing.T) {
	customer := NewCustomer(&fakeCustomerAPI{}, &recordingNotifier{})

	require.NoError(t, customer.FetchPharmacies(context.Background()))
	firstID := customer.LastRequestID()
	require.NotEmpty(t, firstID)

	time.Sleep(time.Millisecond)
	require.NoError(t, customer.FetchPharmacies(context.Background()))
	require.NotEqual(t, firstID, customer.LastRequestID())
}
