package models

import "time"

// OrderStatus represents all possible states of a canteen order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
	StatusSettled   OrderStatus = "Settled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled, StatusSettled:
		return true
	}
	return false
}

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	Code          string               `json:"code" gorm:"uniqueIndex;not null"`
	UserID        uint                 `json:"user_id" gorm:"not null;index"`
	User          User                 `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'Pending'"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	Instructions  string               `json:"instructions"`
	Lines         []OrderLine          `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	PlacedAt      time.Time            `json:"placed_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderLine is a by-value snapshot of a cart line at placement time.
// Later catalog edits never change the name or price recorded here.
type OrderLine struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID  uint    `json:"menu_item_id" gorm:"not null"`
	ItemName    string  `json:"item_name" gorm:"not null"`
	PortionName string  `json:"portion_name" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
}

// OrderStatusHistory tracks every status change for audit
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
