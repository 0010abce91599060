package services

import (
	"errors"
	"mime/multipart"
	"strings"

	"backend/entity"
	"backend/repository"
	"backend/pkg/storage"

	"gorm.io/gorm"
)

// ProductService edits the product/ingredient aggregate as a unit: rows
// change inside one transaction, image files are written during it and
// reconciled after commit (files are not transactional resources).
type ProductService struct {
	DB    *gorm.DB
	Repo  *repository.ProductRepository
	Store *storage.Store
}

func NewProductService(db *gorm.DB, repo *repository.ProductRepository, store *storage.Store) *ProductService {
	return &ProductService{DB: db, Repo: repo, Store: store}
}

type ProductIn struct {
	Name    string
	Big     *float64
	Medium  *float64
	Platter *float64
	Tub     *float64
}

// IngredientIn is one entry of the variable-length ingredient list. A nil
// ID means insert; a set ID updates that ingredient in place. Entries with
// a blank name are skipped silently.
type IngredientIn struct {
	ID          *uint
	Name        string
	Description string
	Image       *multipart.FileHeader
}

func (s *ProductService) List() ([]entity.Product, error)         { return s.Repo.List() }
func (s *ProductService) Search(q string) ([]entity.Product, error) { return s.Repo.Search(q) }

func (s *ProductService) Get(id uint) (*entity.Product, error) {
	p, err := s.Repo.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts the product first to obtain its id (image filenames embed
// it), then stores images and ingredient rows. On any failure the
// transaction rolls back and stored files are deleted best-effort.
func (s *ProductService) Create(in *ProductIn, image *multipart.FileHeader, ingredients []IngredientIn) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fieldError("name", "The name field is required.")
	}

	product := entity.Product{
		Name: in.Name, Big: in.Big, Medium: in.Medium, Platter: in.Platter, Tub: in.Tub,
	}

	var stored []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &product); err != nil {
			return err
		}

		if image != nil {
			name := storage.ProductImageName(product.ID, image.Filename)
			if _, err := s.Store.Save(image, name); err != nil {
				return err
			}
			stored = append(stored, name)
			if err := s.Repo.UpdateFields(tx, product.ID, map[string]any{"image": name}); err != nil {
				return err
			}
			product.Image = name
		}

		for idx, ing := range ingredients {
			if strings.TrimSpace(ing.Name) == "" {
				continue
			}
			row := entity.ProductIngredient{
				ProductID:   product.ID,
				Name:        ing.Name,
				Description: ing.Description,
			}
			if ing.Image != nil {
				name := storage.IngredientImageName(product.ID, idx, ing.Name, ing.Image.Filename)
				if _, err := s.Store.Save(ing.Image, name); err != nil {
					return err
				}
				stored = append(stored, name)
				row.Image = name
			}
			if err := s.Repo.CreateIngredient(tx, &row); err != nil {
				return err
			}
			product.Ingredients = append(product.Ingredients, row)
		}
		return nil
	})
	if err != nil {
		for _, name := range stored {
			s.Store.Delete(name)
		}
		return nil, err
	}
	return &product, nil
}

// Update edits scalar fields and reconciles the ingredient list: entries
// with an id update in place, entries without insert, and any existing
// ingredient whose id is absent from the incoming list is deleted along
// with its image file. Old image files are removed only after commit.
func (s *ProductService) Update(id uint, in *ProductIn, image *multipart.FileHeader, ingredients []IngredientIn, reconcile bool) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fieldError("name", "The name field is required.")
	}

	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var stored, removeAfterCommit []string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{
			"name": in.Name, "big": in.Big, "medium": in.Medium,
			"platter": in.Platter, "tub": in.Tub,
		}

		if image != nil {
			name := storage.ProductImageName(product.ID, image.Filename)
			if _, err := s.Store.Save(image, name); err != nil {
				return err
			}
			stored = append(stored, name)
			if product.Image != "" {
				removeAfterCommit = append(removeAfterCommit, product.Image)
			}
			fields["image"] = name
		}

		if err := s.Repo.UpdateFields(tx, product.ID, fields); err != nil {
			return err
		}

		if !reconcile {
			return nil
		}

		keep := make(map[uint]bool)
		for _, ing := range ingredients {
			if ing.ID != nil {
				keep[*ing.ID] = true
			}
		}
		for _, existing := range product.Ingredients {
			if keep[existing.ID] {
				continue
			}
			if err := s.Repo.DeleteIngredient(tx, existing.ID); err != nil {
				return err
			}
			if existing.Image != "" {
				removeAfterCommit = append(removeAfterCommit, existing.Image)
			}
		}

		for idx, ing := range ingredients {
			if strings.TrimSpace(ing.Name) == "" {
				continue
			}

			if ing.ID == nil {
				row := entity.ProductIngredient{
					ProductID: product.ID, Name: ing.Name, Description: ing.Description,
				}
				if ing.Image != nil {
					name := storage.IngredientImageName(product.ID, idx, ing.Name, ing.Image.Filename)
					if _, err := s.Store.Save(ing.Image, name); err != nil {
						return err
					}
					stored = append(stored, name)
					row.Image = name
				}
				if err := s.Repo.CreateIngredient(tx, &row); err != nil {
					return err
				}
				continue
			}

			fields := map[string]any{"name": ing.Name, "description": ing.Description}
			if ing.Image != nil {
				name := storage.IngredientImageName(product.ID, idx, ing.Name, ing.Image.Filename)
				if _, err := s.Store.Save(ing.Image, name); err != nil {
					return err
				}
				stored = append(stored, name)
				for _, existing := range product.Ingredients {
					if existing.ID == *ing.ID && existing.Image != "" {
						removeAfterCommit = append(removeAfterCommit, existing.Image)
					}
				}
				fields["image"] = name
			}
			if err := s.Repo.UpdateIngredient(tx, *ing.ID, fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, name := range stored {
			s.Store.Delete(name)
		}
		return nil, err
	}

	for _, name := range removeAfterCommit {
		s.Store.Delete(name)
	}
	return s.Get(id)
}

// Destroy cascades: ingredient rows and the product row go in one
// transaction, then every owned image file is deleted best-effort.
func (s *ProductService) Destroy(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteIngredientsByProduct(tx, product.ID); err != nil {
			return err
		}
		return s.Repo.Delete(tx, product.ID)
	})
	if err != nil {
		return err
	}

	s.Store.Delete(product.Image)
	for _, ing := range product.Ingredients {
		s.Store.Delete(ing.Image)
	}
	return nil
}

// DestroyIngredient removes one ingredient; the id must belong to the
// given product.
func (s *ProductService) DestroyIngredient(productID, ingredientID uint) error {
	ing, err := s.Repo.GetIngredient(productID, ingredientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteIngredient(tx, ing.ID)
	})
	if err != nil {
		return err
	}

	s.Store.Delete(ing.Image)
	return nil
}

// CleanOrphanImages deletes stored files no entity references anymore.
func (s *ProductService) CleanOrphanImages() (int, error) {
	referenced, err := s.Repo.ReferencedImages()
	if err != nil {
		return 0, err
	}
	return s.Store.CleanOrphans(referenced)
}
