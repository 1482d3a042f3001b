package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/medimart/medimart/internal/model"
)

func testPharmacy() model.Pharmacy {
	return model.Pharmacy{ID: "ph1", Name: "Central Pharmacy"}
}

func testMedicine() model.Medicine {
	return model.Medicine{MedicineName: "Paracetamol", SellingPrice: 45.50, Stock: 10}
}

func TestCartAddRemove(t *testing.T) {
	basket := New()

	// добавили 2, убрали 1 — одна позиция с количеством 1
	err := basket.Add(testPharmacy(), testMedicine(), 2)
	require.NoError(t, err)
	err = basket.Remove("ph1", "Paracetamol", 1)
	require.NoError(t, err)

	items := basket.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, 1, basket.Quantity("ph1", "Paracetamol"))
	require.Equal(t, 45.50, items[0].LineTotal())
	require.Equal(t, 45.50, basket.Total())

	// удаление последней единицы убирает позицию целиком
	err = basket.Remove("ph1", "Paracetamol", 1)
	require.NoError(t, err)
	require.Equal(t, 0, basket.Len())
	require.Empty(t, basket.Items())
}

func TestCartMerge(t *testing.T) {
	basket := New()

	// повторное добавление сливается в одну позицию
	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 1))
	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 2))

	items := basket.Items()
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
	require.Equal(t, 136.50, basket.Total())
}

func TestCartStock(t *testing.T) {
	basket := New()

	medicine := testMedicine()
	medicine.Stock = 2
	require.NoError(t, basket.Add(testPharmacy(), medicine, 2))
	require.ErrorIs(t, basket.Add(testPharmacy(), medicine, 1), ErrOutOfStock)

	require.ErrorIs(t, basket.Add(testPharmacy(), medicine, 0), ErrQuantityIncorrect)
	require.ErrorIs(t, basket.Remove("ph1", "Paracetamol", -1), ErrQuantityIncorrect)
}

func TestCheckoutPickup(t *testing.T) {
	basket := New()
	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 2))

	requests, err := basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypePickup,
		Phone:         "5551234567",
		PaymentMethod: PaymentCOD,
	}, nil)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, "ph1", requests[0].PharmacyID)
	require.Len(t, requests[0].Items, 1)
	require.Equal(t, 2, requests[0].Items[0].Quantity)
}

func TestCheckoutValidation(t *testing.T) {
	basket := New()

	// пустая корзина не оформляется
	_, err := basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypePickup,
		Phone:         "5551234567",
		PaymentMethod: PaymentCOD,
	}, nil)
	require.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 1))

	// доставка на дом требует адрес
	_, err = basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypeDelivery,
		Phone:         "5551234567",
		PaymentMethod: PaymentCOD,
	}, nil)
	require.Error(t, err)
}

func TestCheckoutCard(t *testing.T) {
	basket := New()
	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 1))

	// валидный номер по Луну
	_, err := basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypePickup,
		Phone:         "5551234567",
		PaymentMethod: PaymentCard,
		CardNumber:    "4539 1488 0343 6467",
	}, nil)
	require.NoError(t, err)

	// невалидный номер отклоняется до запроса
	_, err = basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypePickup,
		Phone:         "5551234567",
		PaymentMethod: PaymentCard,
		CardNumber:    "4539 1488 0343 6468",
	}, nil)
	require.ErrorIs(t, err, ErrCardIncorrect)
}

func TestCardLength(t *testing.T) {
	// короче 12 и длиннее 18 цифр — отказ без переполнения
	require.ErrorIs(t, validateCard("4539148"), ErrCardIncorrect)
	require.ErrorIs(t, validateCard("9999999999999999999"), ErrCardIncorrect)
	require.ErrorIs(t, validateCard("45391488034364679999"), ErrCardIncorrect)

	require.NoError(t, validateCard("4539 1488 0343 6467"))
}

func TestCheckoutGroupsByPharmacy(t *testing.T) {
	basket := New()
	other := model.Pharmacy{ID: "ph2", Name: "East Pharmacy"}

	require.NoError(t, basket.Add(testPharmacy(), testMedicine(), 1))
	require.NoError(t, basket.Add(other, model.Medicine{MedicineName: "Ibuprofen", SellingPrice: 30, Stock: 5}, 2))

	requests, err := basket.Checkout(context.Background(), CheckoutForm{
		DeliveryType:  model.DeliveryTypePickup,
		Phone:         "5551234567",
		PaymentMethod: PaymentCOD,
	}, nil)
	require.NoError(t, err)

	// по одному заказу на аптеку, порядок как в корзине
	require.Len(t, requests, 2)
	require.Equal(t, "ph1", requests[0].PharmacyID)
	require.Equal(t, "ph2", requests[1].PharmacyID)
}
