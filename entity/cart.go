package entity

import (
	"gorm.io/gorm"
)

// Cart is created lazily on first access, one per user. The row survives
// checkout; only its items are deleted.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `json:"-"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
