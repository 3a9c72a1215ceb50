package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the kitchen lifecycle stage of a table's order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus is settled by billing independently of OrderStatus
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentPaid
}

type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TableNumber   string        `json:"tableNumber" gorm:"not null;index"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerNote  string        `json:"customerNote,omitempty"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount   float64       `json:"totalAmount" gorm:"not null"`
	Status        OrderStatus   `json:"status" gorm:"not null;index"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"not null"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	return nil
}

// LineTotal sums price × quantity over the snapshotted items
func (o *Order) LineTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// OrderItem snapshots name and price at order time. MenuItemID is a weak
// reference: the menu entry may change or disappear later.
type OrderItem struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	OrderID    string  `json:"-" gorm:"type:varchar(36);not null;index"`
	MenuItemID string  `json:"menuItem,omitempty" gorm:"type:varchar(36)"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Notes      string  `json:"notes,omitempty"`
}

// OrderStatusHistory records every accepted status or payment change
type OrderStatusHistory struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	OrderID     string        `json:"orderId" gorm:"type:varchar(36);not null;index"`
	FromStatus  OrderStatus   `json:"fromStatus"`
	ToStatus    OrderStatus   `json:"toStatus"`
	FromPayment PaymentStatus `json:"fromPayment"`
	ToPayment   PaymentStatus `json:"toPayment"`
	ChangedBy   string        `json:"changedBy"`
	Role        UserRole      `json:"role"`
	CreatedAt   time.Time     `json:"createdAt"`
}
