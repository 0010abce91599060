package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ProductRepo: pr}
}

type AddToCartIn struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Size      entity.Size `json:"size" binding:"required,oneof=big medium platter tub"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	// snapshot taken at add-time; deliberately not re-read from the product
	// on later cart views
	UnitPrice    float64 `json:"product_price" binding:"gte=0"`
	ProductImage string  `json:"product_image"`
}

type CartLineIn struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Size      entity.Size `json:"size" binding:"required,oneof=big medium platter tub"`
}

// Show returns the cart with items eagerly joined to current product data.
func (s *CartService) Show(userID uint) (*entity.Cart, error) {
	return s.CartRepo.GetWithItems(userID)
}

// Add inserts a line or increments the quantity of the existing
// (product, size) line in a single atomic upsert.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	ok, err := s.ProductRepo.Exists(in.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return fieldError("product_id", "The selected product_id is invalid.")
	}

	cart, err := s.CartRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}

	row := &entity.CartItem{
		CartID:       cart.ID,
		ProductID:    in.ProductID,
		Size:         in.Size,
		UnitPrice:    in.UnitPrice,
		ProductImage: in.ProductImage,
		Quantity:     in.Quantity,
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertItem(tx, row)
	})
}

// UpdateQuantity overwrites the quantity of an existing line; absent cart
// or line is a not-found, never an implicit insert.
func (s *CartService) UpdateQuantity(userID uint, line *CartLineIn, qty int) error {
	if qty < 1 {
		return fieldError("quantity", "The quantity must be at least 1.")
	}

	cart, err := s.CartRepo.GetWithItems(userID)
	if err != nil {
		return err
	}
	if cart.ID == 0 {
		return ErrNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.CartRepo.UpdateQuantity(tx, cart.ID, line.ProductID, line.Size, qty)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Remove deletes the matching line. Absent cart or line is a no-op, not an
// error.
func (s *CartService) Remove(userID uint, line *CartLineIn) error {
	cart, err := s.CartRepo.GetWithItems(userID)
	if err != nil {
		return err
	}
	if cart.ID == 0 {
		return nil
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, cart.ID, line.ProductID, line.Size)
	})
}

// SetSelected flips the partial-checkout flag. Selection is a UI-only
// filter; checkout always takes the whole cart.
func (s *CartService) SetSelected(itemID uint, selected bool) error {
	affected, err := s.CartRepo.SetSelected(itemID, selected)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err maps to HTTP 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
