package entity

import (
	"gorm.io/gorm"
)

// Product is the aggregate root of the catalog. Per-size prices are nil
// when the product is not offered in that size.
type Product struct {
	gorm.Model
	Name    string   `gorm:"not null" json:"name"`
	Big     *float64 `json:"big"`
	Medium  *float64 `json:"medium"`
	Platter *float64 `json:"platter"`
	Tub     *float64 `json:"tub"`
	Image   string   `json:"image"`

	Ingredients []ProductIngredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ingredients"`
}

// PriceFor returns the price for a size, nil when the size is not offered.
func (p *Product) PriceFor(size Size) *float64 {
	switch size {
	case SizeBig:
		return p.Big
	case SizeMedium:
		return p.Medium
	case SizePlatter:
		return p.Platter
	case SizeTub:
		return p.Tub
	}
	return nil
}
