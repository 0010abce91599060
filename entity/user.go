package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `json:"-"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	ZipCode       string `json:"zip_code"`
	Role          string `gorm:"not null;default:customer" json:"role"`

	// path under the uploads dir, empty when no avatar was uploaded
	Image string `json:"image"`

	Orders []Order `json:"-"`
	Cart   *Cart   `json:"-"`
}
