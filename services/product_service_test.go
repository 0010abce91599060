package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"backend/entity"
)

func writeStoredFile(t *testing.T, svc *ProductService, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(svc.Store.Dir, name), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func storedFileExists(svc *ProductService, name string) bool {
	_, err := os.Stat(filepath.Join(svc.Store.Dir, name))
	return err == nil
}

func TestCreateProductWithIngredients(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	product, err := svc.Create(
		&ProductIn{Name: "Mango Sticky Rice", Big: floatPtr(1400), Tub: floatPtr(240)},
		nil,
		[]IngredientIn{
			{Name: "Mango", Description: "ripe carabao mango"},
			{Name: "  "}, // blank names are skipped silently
			{Name: "Sticky Rice"},
		},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("product id not assigned")
	}
	if len(product.Ingredients) != 2 {
		t.Fatalf("want 2 ingredients (blank skipped), got %d", len(product.Ingredients))
	}

	var count int64
	db.Model(&entity.ProductIngredient{}).Count(&count)
	if count != 2 {
		t.Errorf("want 2 ingredient rows, got %d", count)
	}
}

func TestCreateProductRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	_, err := svc.Create(&ProductIn{Name: "   "}, nil, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	var count int64
	db.Model(&entity.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("failed create must leave no row, got %d", count)
	}
}

func TestUpdateReconcilesIngredients(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	product, err := svc.Create(
		&ProductIn{Name: "Hardinera", Tub: floatPtr(280)},
		nil,
		[]IngredientIn{{Name: "Pork"}, {Name: "Raisins"}, {Name: "Cheese"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	keep, drop := product.Ingredients[0], product.Ingredients[1]

	// give the doomed ingredient an image file on disk
	if err := db.Model(&entity.ProductIngredient{}).Where("id = ?", drop.ID).
		Update("image", "ingredient_drop.png").Error; err != nil {
		t.Fatal(err)
	}
	writeStoredFile(t, svc, "ingredient_drop.png")

	updated, err := svc.Update(product.ID,
		&ProductIn{Name: "Hardinera Especial", Tub: floatPtr(300)},
		nil,
		[]IngredientIn{
			{ID: &keep.ID, Name: "Pork", Description: "slow-cooked"},
			{ID: &product.Ingredients[2].ID, Name: "Cheese"},
			{Name: "Carrots"}, // no id → insert
		},
		true,
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Hardinera Especial" {
		t.Errorf("scalar update lost: %q", updated.Name)
	}
	if len(updated.Ingredients) != 3 {
		t.Fatalf("want 3 ingredients after reconcile, got %d", len(updated.Ingredients))
	}

	var gone int64
	db.Model(&entity.ProductIngredient{}).Where("id = ?", drop.ID).Count(&gone)
	if gone != 0 {
		t.Error("omitted ingredient must be deleted")
	}
	if storedFileExists(svc, "ingredient_drop.png") {
		t.Error("omitted ingredient's image file must be deleted")
	}

	var kept entity.ProductIngredient
	if err := db.First(&kept, keep.ID).Error; err != nil {
		t.Fatalf("kept ingredient vanished: %v", err)
	}
	if kept.Description != "slow-cooked" {
		t.Errorf("in-place ingredient update lost: %q", kept.Description)
	}
}

func TestUpdateWithoutIngredientListLeavesThemAlone(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	product, err := svc.Create(&ProductIn{Name: "Puto Flan"}, nil,
		[]IngredientIn{{Name: "Egg"}, {Name: "Flour"}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(product.ID, &ProductIn{Name: "Puto Flan Deluxe"}, nil, nil, false); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&entity.ProductIngredient{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 2 {
		t.Errorf("ingredients must be untouched when no list is sent, got %d", count)
	}
}

func TestDestroyCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	product, err := svc.Create(&ProductIn{Name: "Banana Cake Loaf"}, nil,
		[]IngredientIn{{Name: "Banana"}})
	if err != nil {
		t.Fatal(err)
	}

	// stored images for the product and its ingredient
	if err := db.Model(&entity.Product{}).Where("id = ?", product.ID).
		Update("image", "product_main.png").Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&entity.ProductIngredient{}).Where("product_id = ?", product.ID).
		Update("image", "ingredient_banana.png").Error; err != nil {
		t.Fatal(err)
	}
	writeStoredFile(t, svc, "product_main.png")
	writeStoredFile(t, svc, "ingredient_banana.png")

	if err := svc.Destroy(product.ID); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	var products, ingredients int64
	db.Model(&entity.Product{}).Count(&products)
	db.Model(&entity.ProductIngredient{}).Count(&ingredients)
	if products != 0 || ingredients != 0 {
		t.Errorf("cascade left rows behind: %d products, %d ingredients", products, ingredients)
	}
	if storedFileExists(svc, "product_main.png") || storedFileExists(svc, "ingredient_banana.png") {
		t.Error("cascade left image files behind")
	}
}

func TestDestroyIngredientChecksOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	a, err := svc.Create(&ProductIn{Name: "A"}, nil, []IngredientIn{{Name: "X"}})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Create(&ProductIn{Name: "B"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DestroyIngredient(b.ID, a.Ingredients[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for foreign ingredient, got %v", err)
	}
	if err := svc.DestroyIngredient(a.ID, a.Ingredients[0].ID); err != nil {
		t.Fatalf("destroy own ingredient: %v", err)
	}
}

func TestCleanOrphanImages(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(t, db)

	product, err := svc.Create(&ProductIn{Name: "Espasol"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&entity.Product{}).Where("id = ?", product.ID).
		Update("image", "product_kept.png").Error; err != nil {
		t.Fatal(err)
	}
	writeStoredFile(t, svc, "product_kept.png")
	writeStoredFile(t, svc, "orphan.png")

	deleted, err := svc.CleanOrphanImages()
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("want 1 orphan deleted, got %d", deleted)
	}
	if !storedFileExists(svc, "product_kept.png") {
		t.Error("referenced image must survive the sweep")
	}
	if storedFileExists(svc, "orphan.png") {
		t.Error("orphan image must be deleted")
	}
}
