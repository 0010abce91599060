package services

import (
	"errors"
	"mime/multipart"

	"backend/entity"
	"backend/repository"
	"backend/pkg/storage"

	"gorm.io/gorm"
)

type UserService struct {
	Repo  *repository.UserRepository
	Store *storage.Store
}

func NewUserService(repo *repository.UserRepository, store *storage.Store) *UserService {
	return &UserService{Repo: repo, Store: store}
}

type UserUpdateIn struct {
	Name          string `form:"name" binding:"required,max=255"`
	Email         string `form:"email" binding:"required,email"`
	Phone         string `form:"phone" binding:"required,max=20"`
	StreetAddress string `form:"street_address" binding:"required,max=255"`
	City          string `form:"city" binding:"required,max=255"`
	ZipCode       string `form:"zip_code" binding:"required,max=255"`
}

func (s *UserService) List(page, limit int, q string) ([]entity.User, int64, error) {
	return s.Repo.List(page, limit, q)
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// Update edits profile fields and optionally replaces the avatar, deleting
// the old file once the new one is in place.
func (s *UserService) Update(id uint, in *UserUpdateIn, image *multipart.FileHeader) (*entity.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	other, err := s.Repo.FindByEmail(in.Email)
	if err == nil && other.ID != user.ID {
		return nil, fieldError("email", "The email has already been taken.")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fields := map[string]any{
		"name": in.Name, "email": in.Email, "phone": in.Phone,
		"street_address": in.StreetAddress, "city": in.City, "zip_code": in.ZipCode,
	}

	oldImage := ""
	if image != nil {
		name := storage.UserImageName(user.ID, image.Filename)
		if _, err := s.Store.Save(image, name); err != nil {
			return nil, err
		}
		oldImage = user.Image
		fields["image"] = name
	}

	if err := s.Repo.Update(user.ID, fields); err != nil {
		if name, ok := fields["image"].(string); ok {
			s.Store.Delete(name)
		}
		return nil, err
	}

	if oldImage != "" {
		s.Store.Delete(oldImage)
	}
	return s.Get(id)
}

func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(user.ID); err != nil {
		return err
	}
	s.Store.Delete(user.Image)
	return nil
}
