package models

import "time"

// Feedback is a customer's rating of a completed order.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"` // 1-5 stars
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
