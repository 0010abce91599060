package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetOrCreate returns the user's cart, creating the row lazily on first
// access.
func (r *CartRepository) GetOrCreate(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where(entity.Cart{UserID: userID}).FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetWithItems loads the cart with items joined to their current product
// rows (display only; the stored snapshot price is untouched). A missing
// cart comes back empty rather than as an error.
func (r *CartRepository) GetWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertItem inserts the line or, when the (cart, product, size) slot is
// already taken, atomically increments its quantity. Single statement, so
// concurrent adds cannot lose an update.
func (r *CartRepository) UpsertItem(tx *gorm.DB, row *entity.CartItem) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "size"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("quantity + ?", row.Quantity),
		}),
	}).Create(row).Error
}

// UpdateQuantity overwrites (not increments) the quantity of the matching
// line. Returns the number of rows touched so the caller can 404.
func (r *CartRepository) UpdateQuantity(tx *gorm.DB, cartID, productID uint, size entity.Size, qty int) (int64, error) {
	res := tx.Model(&entity.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Update("quantity", qty)
	return res.RowsAffected, res.Error
}

// RemoveItem hard-deletes so the unique (cart, product, size) slot can be
// reused by a later add.
func (r *CartRepository) RemoveItem(tx *gorm.DB, cartID, productID uint, size entity.Size) error {
	return tx.Unscoped().
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) SetSelected(itemID uint, selected bool) (int64, error) {
	res := r.DB.Model(&entity.CartItem{}).
		Where("id = ?", itemID).
		Update("selected", selected)
	return res.RowsAffected, res.Error
}

// ClearItems empties the cart after checkout; the cart row itself persists
// for reuse.
func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) error {
	return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}
