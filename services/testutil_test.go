package services

import (
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/storage"
	"backend/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Product{}, &entity.ProductIngredient{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	return store
}

func newCartService(t *testing.T, db *gorm.DB) *CartService {
	t.Helper()
	return NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		AllowAllTransitions,
		nil, // feed is nil-safe
	)
}

func newProductService(t *testing.T, db *gorm.DB) *ProductService {
	t.Helper()
	return NewProductService(db, repository.NewProductRepository(db), newTestStore(t))
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Role: "customer"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func floatPtr(v float64) *float64 { return &v }

func seedProduct(t *testing.T, db *gorm.DB, name string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Big: floatPtr(1400), Tub: floatPtr(240)}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func validDelivery(t *testing.T) *DeliveryDetails {
	t.Helper()
	return &DeliveryDetails{
		Email:         "buyer@example.com",
		Phone:         "09171234567",
		StreetAddress: "123 Mango St",
		City:          "Lucena",
		ZipCode:       "4301",
		DeliveryDate:  tomorrow(),
		PaymentMethod: entity.PaymentCash,
	}
}
