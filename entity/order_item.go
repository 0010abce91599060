package entity

import (
	"gorm.io/gorm"
)

// OrderItem snapshots the product name, image and price at purchase time so
// later catalog edits or deletions do not alter historical orders. CartID is
// nil for quick orders that bypass the cart.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"order_id"`
	Order   Order `json:"-"`

	CartID    *uint    `json:"cart_id"`
	ProductID uint     `json:"product_id"`
	Product   *Product `json:"product,omitempty"`

	ProductName     string  `json:"product_name"`
	ProductImage    string  `json:"product_image"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
	Size            Size    `json:"size"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
}
