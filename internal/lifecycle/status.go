package lifecycle

import (
	"strings"

	"github.com/medimart/medimart/internal/model"
)

// Цвет бейджа статуса (только оформление)

type Color string

const (
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

type statusView struct {
	label string
	color Color
}

var statusViews = map[model.OrderStatus]statusView{
	model.OrderStatusPending:        {"Pending", ColorYellow},
	model.OrderStatusConfirmed:      {"Confirmed", ColorBlue},
	model.OrderStatusAssigned:       {"Volunteer Assigned", ColorPurple},
	model.OrderStatusPickedUp:       {"Picked Up", ColorOrange},
	model.OrderStatusOutForDelivery: {"Out for Delivery", ColorOrange},
	model.OrderStatusDelivered:      {"Delivered", ColorGreen},
	model.OrderStatusReadyForPickup: {"Ready for Pickup", ColorBlue},
	model.OrderStatusCompleted:      {"Completed", ColorGreen},
	model.OrderStatusCancelled:      {"Cancelled", ColorRed},
}

// StatusLabel — подпись статуса; для неизвестного — капитализация сырой строки
func StatusLabel(status model.OrderStatus) string {
	if view, ok := statusViews[status]; ok {
		return view.label
	}
	return capitalize(string(status))
}

// StatusColor — цвет бейджа; для неизвестного — нейтральный
func StatusColor(status model.OrderStatus) Color {
	if view, ok := statusViews[status]; ok {
		return view.color
	}
	return ColorGray
}

func capitalize(raw string) string {
	words := strings.Split(strings.ReplaceAll(raw, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Таблица допустимых переходов статусов.
// Ветвление после confirmed зависит от типа доставки
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:      {model.OrderStatusAssigned, model.OrderStatusReadyForPickup, model.OrderStatusCancelled},
	model.OrderStatusAssigned:       {model.OrderStatusPickedUp, model.OrderStatusCancelled},
	model.OrderStatusPickedUp:       {model.OrderStatusOutForDelivery},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered},
	model.OrderStatusReadyForPickup: {model.OrderStatusCompleted},
	model.OrderStatusDelivered:      {},
	model.OrderStatusCompleted:      {},
	model.OrderStatusCancelled:      {},
}

// CanTransition проверяет переход по таблице с учётом типа доставки
func CanTransition(from model.OrderStatus, to model.OrderStatus, deliveryType model.DeliveryType) bool {
	if from == model.OrderStatusConfirmed {
		if to == model.OrderStatusAssigned && deliveryType != model.DeliveryTypeDelivery {
			return false
		}
		if to == model.OrderStatusReadyForPickup && deliveryType != model.DeliveryTypePickup {
			return false
		}
	}

	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
