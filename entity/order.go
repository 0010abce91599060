package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order is immutable after creation except for Status. Total is computed
// once at checkout and never recomputed.
type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"user_id"`
	User   User `json:"-"`

	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	StreetAddress string        `json:"street_address"`
	City          string        `json:"city"`
	ZipCode       string        `json:"zip_code"`
	DeliveryDate  time.Time     `json:"delivery_date"`
	Instructions  string        `json:"instructions"`
	PaymentMethod PaymentMethod `json:"payment_method"`

	Status OrderStatus `gorm:"not null;default:pending" json:"status"`
	Total  float64     `json:"total"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
