package model

import "time"

// Роли пользователей

type Role string

const (
	RoleCustomer  Role = "Customer"
	RoleVendor    Role = "Vendor"
	RoleVolunteer Role = "Volunteer"
	RoleAdmin     Role = "Admin"
)

// Пользователь и сессия

type UserProfile struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	AccountType Role   `json:"accountType"`
}

// Session держит клиентское состояние авторизации.
// Инвариант: IsAuthenticated == (Token != ""), User == nil при пустом токене
type Session struct {
	User            *UserProfile
	Token           string
	IsAuthenticated bool
}

// Статусы заказа

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusAssigned       OrderStatus = "assigned"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Заказ

type OrderLineItem struct {
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

type Order struct {
	ID           string          `json:"_id"`
	PharmacyID   string          `json:"pharmacyId"`
	PharmacyName string          `json:"pharmacyName,omitempty"`
	CustomerID   string          `json:"customerId,omitempty"`
	VolunteerID  string          `json:"volunteerId,omitempty"`
	Status       OrderStatus     `json:"orderStatus"`
	DeliveryType DeliveryType    `json:"deliveryType"`
	Items        []OrderLineItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
	DeliveryFee  float64         `json:"deliveryFee,omitempty"`
	Total        float64         `json:"totalAmount"`
	Address      string          `json:"deliveryAddress,omitempty"`
	Location     *Coordinates    `json:"deliveryLocation,omitempty"`

	// Прогресс, присланный бэкендом, имеет приоритет над расчётным
	Progress *int `json:"progress,omitempty"`

	PlacedAt             *time.Time `json:"placedAt,omitempty"`
	ConfirmedAt          *time.Time `json:"confirmedAt,omitempty"`
	AssignedAt           *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt           *time.Time `json:"pickedUpAt,omitempty"`
	OutForDeliveryAt     *time.Time `json:"outForDeliveryAt,omitempty"`
	DeliveredAt          *time.Time `json:"deliveredAt,omitempty"`
	ReadyForPickupAt     *time.Time `json:"readyForPickupAt,omitempty"`
	PickedUpByCustomerAt *time.Time `json:"pickedUpByCustomerAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	CancelledAt          *time.Time `json:"cancelledAt,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Аптеки и волонтёры: сущности на модерации

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

type Pharmacy struct {
	ID              string         `json:"_id"`
	Name            string         `json:"pharmacyName"`
	Address         string         `json:"address"`
	Phone           string         `json:"phone,omitempty"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ApprovedBy      string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	Location        *Coordinates   `json:"location,omitempty"`
}

type Volunteer struct {
	ID              string         `json:"_id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone,omitempty"`
	Vehicle         string         `json:"vehicle,omitempty"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	ApprovedBy      string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
}

// Товары

type Medicine struct {
	MedicineName string  `json:"medicineName"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        int     `json:"stock"`
	PharmacyID   string  `json:"pharmacyId"`
	PharmacyName string  `json:"pharmacyName,omitempty"`
}

type InventoryItem struct {
	ID            string  `json:"_id"`
	MedicineName  string  `json:"medicineName"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Stock         int     `json:"stock"`
}

// Сводка для панели администратора

type DashboardStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalOrders       int `json:"totalOrders"`
	TotalPharmacies   int `json:"totalPharmacies"`
	TotalVolunteers   int `json:"totalVolunteers"`
	PendingPharmacies int `json:"pendingPharmacies"`
	PendingVolunteers int `json:"pendingVolunteers"`
}
