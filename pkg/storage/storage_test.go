package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"mango sticky rice":          "mangostickyrice",
		"IMG_2024-06-18 (1)":         "IMG202406181",
		"aaaaaaaaaabbbbbbbbbbcccccc": "aaaaaaaaaabbbbbbbbbb", // truncated to 20
		"日本語なまえ":                     "",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProductImageName(t *testing.T) {
	name := ProductImageName(42, "My Photo!.JPEG")
	if !strings.HasPrefix(name, "product_42_MyPhoto_") {
		t.Errorf("unexpected prefix: %q", name)
	}
	if !strings.HasSuffix(name, ".JPEG") {
		t.Errorf("original extension must be preserved: %q", name)
	}
}

func TestIngredientImageName(t *testing.T) {
	name := IngredientImageName(7, 2, "Sticky Rice", "upload.png")
	if !strings.HasPrefix(name, "ingredient_7_2_StickyRice_") {
		t.Errorf("unexpected prefix: %q", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("unexpected suffix: %q", name)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if store.Delete("never-existed.png") {
		t.Error("deleting a missing file must report false, not fail")
	}
	if store.Delete("") {
		t.Error("empty name must be a no-op")
	}

	if err := os.WriteFile(filepath.Join(store.Dir, "a.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !store.Delete("a.png") {
		t.Error("first delete must succeed")
	}
	if store.Delete("a.png") {
		t.Error("second delete must be a no-op")
	}
}

func TestCleanOrphans(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"kept.png", "orphan1.png", "orphan2.png"} {
		if err := os.WriteFile(filepath.Join(store.Dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.CleanOrphans(map[string]bool{"kept.png": true})
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("want 2 deleted, got %d", deleted)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, "kept.png")); err != nil {
		t.Error("referenced file must survive")
	}
}
