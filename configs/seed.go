package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdmin(cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Name:     "Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

func price(v float64) *float64 { return &v }

// SeedProducts loads the starter catalog once, on an empty products table.
func SeedProducts() error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []entity.Product{
		{Name: "Mango Sticky Rice", Big: price(1400), Medium: price(850), Platter: price(530), Tub: price(240)},
		{Name: "Veggies Macaroni Salad", Big: price(1400), Medium: price(850), Platter: price(430), Tub: price(240)},
		{Name: "Mango Grahams", Tub: price(200)},
		{Name: "Mango Jelly", Tub: price(115)},
		{Name: "Puto Flan", Tub: price(170)},
		{Name: "Yema Cake", Tub: price(150)},
		{Name: "Hardinera", Tub: price(280)},
		{Name: "Banana Cake Loaf", Tub: price(200)},
		{Name: "Espasol", Tub: price(150)},
	}
	return db.Create(&products).Error
}
