package lifecycle

import (
	"math"
	"time"

	"github.com/medimart/medimart/internal/model"
)

// Step — шаг таймлайна заказа
type Step struct {
	Status    model.OrderStatus
	Label     string
	timestamp func(model.Order) *time.Time
}

// Timestamp — отметка времени шага на конкретном заказе (может отсутствовать)
func (s Step) Timestamp(order model.Order) *time.Time {
	if s.timestamp == nil {
		return nil
	}
	return s.timestamp(order)
}

// Две фиксированные последовательности шагов.
// Единственное место, где они определены: все экраны читают отсюда
var deliverySteps = []Step{
	{model.OrderStatusPending, "Order Placed", func(o model.Order) *time.Time { return o.PlacedAt }},
	{model.OrderStatusConfirmed, "Order Confirmed", func(o model.Order) *time.Time { return o.ConfirmedAt }},
	{model.OrderStatusAssigned, "Volunteer Assigned", func(o model.Order) *time.Time { return o.AssignedAt }},
	{model.OrderStatusPickedUp, "Picked Up from Pharmacy", func(o model.Order) *time.Time { return o.PickedUpAt }},
	{model.OrderStatusOutForDelivery, "Out for Delivery", func(o model.Order) *time.Time { return o.OutForDeliveryAt }},
	{model.OrderStatusDelivered, "Delivered", func(o model.Order) *time.Time { return o.DeliveredAt }},
}

var pickupSteps = []Step{
	{model.OrderStatusPending, "Order Placed", func(o model.Order) *time.Time { return o.PlacedAt }},
	{model.OrderStatusConfirmed, "Order Confirmed", func(o model.Order) *time.Time { return o.ConfirmedAt }},
	{model.OrderStatusReadyForPickup, "Ready for Pickup", func(o model.Order) *time.Time { return o.ReadyForPickupAt }},
	{model.OrderStatusCompleted, "Order Completed", func(o model.Order) *time.Time { return o.CompletedAt }},
}

// Timeline выбирает последовательность шагов по типу доставки.
// Неизвестный тип трактуем как доставку на дом
func Timeline(deliveryType model.DeliveryType) []Step {
	if deliveryType == model.DeliveryTypePickup {
		return pickupSteps
	}
	return deliverySteps
}

// CurrentStepIndex — индекс текущего статуса в последовательности,
// -1 если статуса там нет (отменённый или неизвестный)
func CurrentStepIndex(order model.Order) int {
	for i, step := range Timeline(order.DeliveryType) {
		if step.Status == order.Status {
			return i
		}
	}
	return -1
}

// Progress — процент выполнения.
// Значение от бэкенда имеет приоритет над расчётным
func Progress(order model.Order) int {
	if order.Progress != nil {
		return *order.Progress
	}
	index := CurrentStepIndex(order)
	if index < 0 {
		return 0
	}
	steps := Timeline(order.DeliveryType)
	return int(math.Round(float64(index+1) / float64(len(steps)) * 100))
}

// StepCompleted — шаг пройден, если у него есть отметка времени
// либо он раньше текущего (бэкенд может пропускать промежуточные отметки)
func StepCompleted(order model.Order, index int) bool {
	steps := Timeline(order.DeliveryType)
	if index < 0 || index >= len(steps) {
		return false
	}
	if steps[index].Timestamp(order) != nil {
		return true
	}
	current := CurrentStepIndex(order)
	return current >= 0 && index < current
}

// Rendering — какой экран показывать по статусу заказа

type Rendering int

const (
	RenderingTimeline Rendering = iota
	RenderingCancelled
	RenderingUnknown
)

// RenderMode: отменённый заказ получает отдельный экран,
// неизвестный статус — безопасный "в обработке" вместо падения
func RenderMode(order model.Order) Rendering {
	if order.Status == model.OrderStatusCancelled {
		return RenderingCancelled
	}
	if CurrentStepIndex(order) < 0 {
		return RenderingUnknown
	}
	return RenderingTimeline
}
