package entity

import (
	"gorm.io/gorm"
)

// CartItem holds price and image snapshots taken at add-time; they are
// never re-read from the product on later cart views. The composite unique
// index backs
// the ON CONFLICT upsert so duplicate adds increment quantity instead of
// inserting a second row.
type CartItem struct {
	gorm.Model
	CartID    uint     `gorm:"uniqueIndex:idx_cart_product_size" json:"cart_id"`
	Cart      Cart     `json:"-"`
	ProductID uint     `gorm:"uniqueIndex:idx_cart_product_size" json:"product_id"`
	Product   *Product `json:"product,omitempty"`

	Size         Size    `gorm:"uniqueIndex:idx_cart_product_size" json:"size"`
	UnitPrice    float64 `json:"product_price"`
	ProductImage string  `json:"product_image"`
	Quantity     int     `json:"quantity"`
	Selected     bool    `gorm:"default:false" json:"selected"`
}
