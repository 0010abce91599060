package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes uploaded images to a flat directory served by the HTTP
// layer. Files are not transactional resources: callers delete them after
// the owning database transaction commits, best-effort.
type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Sanitize strips every character outside [A-Za-z0-9] and truncates to 20
// characters, per the shared filename policy.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

func baseName(original string) string {
	base := filepath.Base(original)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProductImageName builds product_{id}_{sanitizedBase}_{unix}{ext}.
// The timestamp gives practical uniqueness without a collision check.
func ProductImageName(productID uint, original string) string {
	return fmt.Sprintf("product_%d_%s_%d%s",
		productID, Sanitize(baseName(original)), time.Now().Unix(), filepath.Ext(original))
}

// IngredientImageName builds ingredient_{productID}_{index}_{sanitizedName}_{unix}{ext}.
func IngredientImageName(productID uint, index int, ingredientName, original string) string {
	return fmt.Sprintf("ingredient_%d_%d_%s_%d%s",
		productID, index, Sanitize(ingredientName), time.Now().Unix(), filepath.Ext(original))
}

// UserImageName builds user_{id}_{sanitizedBase}_{unix}{ext}.
func UserImageName(userID uint, original string) string {
	return fmt.Sprintf("user_%d_%s_%d%s",
		userID, Sanitize(baseName(original)), time.Now().Unix(), filepath.Ext(original))
}

// Save writes the uploaded file under the store dir and returns the stored
// name, which is what entity image fields hold.
func (s *Store) Save(fh *multipart.FileHeader, name string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Delete removes a stored file. Idempotent: a missing file is not an error.
// Real failures are logged, never escalated; image cleanup is best-effort.
func (s *Store) Delete(name string) bool {
	if name == "" {
		return false
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("storage: delete %s: %v", name, err)
		}
		return false
	}
	return true
}

// CleanOrphans deletes every file in the store that is not in the
// referenced set and returns how many were removed.
func (s *Store) CleanOrphans(referenced map[string]bool) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, e := range entries {
		if e.IsDir() || referenced[e.Name()] {
			continue
		}
		if s.Delete(e.Name()) {
			deleted++
		}
	}
	return deleted, nil
}
