package entity

import (
	"gorm.io/gorm"
)

// ProductIngredient lives and dies with its owning product.
type ProductIngredient struct {
	gorm.Model
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Product     Product `json:"-"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}
