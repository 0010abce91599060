package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) List() ([]entity.Product, error) {
	var products []entity.Product
	err := r.DB.Preload("Ingredients").Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Get(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.Preload("Ingredients").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Search(q string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.DB.Preload("Ingredients").
		Where("name LIKE ?", "%"+q+"%").
		Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProductRepository) Create(tx *gorm.DB, p *entity.Product) error {
	return tx.Create(p).Error
}

func (r *ProductRepository) UpdateFields(tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.Model(&entity.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Delete hard-deletes the product row. Ingredient rows go separately inside
// the same transaction so the caller can collect their image paths first.
func (r *ProductRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Product{}, id).Error
}

// ---------------- Ingredients ----------------

func (r *ProductRepository) GetIngredient(productID, ingredientID uint) (*entity.ProductIngredient, error) {
	var ing entity.ProductIngredient
	err := r.DB.Where("id = ? AND product_id = ?", ingredientID, productID).First(&ing).Error
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ProductRepository) ListIngredients(productID uint) ([]entity.ProductIngredient, error) {
	var ings []entity.ProductIngredient
	err := r.DB.Where("product_id = ?", productID).Order("id").Find(&ings).Error
	return ings, err
}

func (r *ProductRepository) CreateIngredient(tx *gorm.DB, ing *entity.ProductIngredient) error {
	return tx.Create(ing).Error
}

func (r *ProductRepository) UpdateIngredient(tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.Model(&entity.ProductIngredient{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ProductRepository) DeleteIngredient(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.ProductIngredient{}, id).Error
}

func (r *ProductRepository) DeleteIngredientsByProduct(tx *gorm.DB, productID uint) error {
	return tx.Unscoped().Where("product_id = ?", productID).Delete(&entity.ProductIngredient{}).Error
}

// ReferencedImages collects every image filename the catalog and user
// tables still point at, for the orphan sweep.
func (r *ProductRepository) ReferencedImages() (map[string]bool, error) {
	referenced := make(map[string]bool)

	collect := func(model any, column string) error {
		var names []string
		if err := r.DB.Model(model).Where(column+" <> ''").Pluck(column, &names).Error; err != nil {
			return err
		}
		for _, n := range names {
			referenced[n] = true
		}
		return nil
	}

	if err := collect(&entity.Product{}, "image"); err != nil {
		return nil, err
	}
	if err := collect(&entity.ProductIngredient{}, "image"); err != nil {
		return nil, err
	}
	if err := collect(&entity.User{}, "image"); err != nil {
		return nil, err
	}
	if err := collect(&entity.OrderItem{}, "product_image"); err != nil {
		return nil, err
	}
	return referenced, nil
}
