package controllers

import (
	"mime/multipart"
	"net/http"
	"regexp"
	"sort"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct{ Svc *services.ProductService }

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Svc: s}
}

// GET /products
func (h *ProductController) Index(c *gin.Context) {
	products, err := h.Svc.List()
	if err != nil {
		handleServiceError(c, err, "Products not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /products/search?q=
func (h *ProductController) Search(c *gin.Context) {
	products, err := h.Svc.Search(c.Query("q"))
	if err != nil {
		handleServiceError(c, err, "Products not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /products/:id
func (h *ProductController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Product not found")
		return
	}
	product, err := h.Svc.Get(uint(id))
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// POST /products (multipart)
func (h *ProductController) Store(c *gin.Context) {
	in, image, ingredients, _, err := h.parseAggregateForm(c)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	product, err := h.Svc.Create(in, image, ingredients)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// POST|PUT /products/:id (multipart, POST kept for method-spoofing clients)
func (h *ProductController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Product not found")
		return
	}
	in, image, ingredients, provided, err := h.parseAggregateForm(c)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	product, err := h.Svc.Update(uint(id), in, image, ingredients, provided)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductController) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Product not found")
		return
	}
	if err := h.Svc.Destroy(uint(id)); err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// DELETE /products/:id/ingredients/:ingredientId
func (h *ProductController) DestroyIngredient(c *gin.Context) {
	productID, err1 := strconv.ParseUint(c.Param("id"), 10, 64)
	ingredientID, err2 := strconv.ParseUint(c.Param("ingredientId"), 10, 64)
	if err1 != nil || err2 != nil {
		resp.NotFound(c, "Ingredient not found")
		return
	}
	if err := h.Svc.DestroyIngredient(uint(productID), uint(ingredientID)); err != nil {
		handleServiceError(c, err, "Ingredient not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}

// POST /admin/images/clean-orphans
func (h *ProductController) CleanOrphanImages(c *gin.Context) {
	deleted, err := h.Svc.CleanOrphanImages()
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cleanup complete",
		"deleted": deleted,
	})
}

// ---------------- multipart parsing ----------------

var (
	ingredientValueRe = regexp.MustCompile(`^ingredients\[(\d+)\]\[(id|name|description)\]$`)
	ingredientFileRe  = regexp.MustCompile(`^ingredients\[(\d+)\]\[image\]$`)
)

// parseAggregateForm reads the product fields, the optional main image and
// the indexed ingredients[i][...] entries from a multipart form. The bool
// result reports whether any ingredient key was present at all; an update
// without ingredient keys leaves the existing list alone.
func (h *ProductController) parseAggregateForm(c *gin.Context) (*services.ProductIn, *multipart.FileHeader, []services.IngredientIn, bool, error) {
	in := &services.ProductIn{Name: c.PostForm("name")}

	var err error
	if in.Big, err = formPrice(c, "big"); err != nil {
		return nil, nil, nil, false, err
	}
	if in.Medium, err = formPrice(c, "medium"); err != nil {
		return nil, nil, nil, false, err
	}
	if in.Platter, err = formPrice(c, "platter"); err != nil {
		return nil, nil, nil, false, err
	}
	if in.Tub, err = formPrice(c, "tub"); err != nil {
		return nil, nil, nil, false, err
	}

	image, _ := c.FormFile("image")

	form, err := c.MultipartForm()
	if err != nil {
		// plain form posts without files are still fine
		return in, image, nil, false, nil
	}

	entries := make(map[int]*services.IngredientIn)
	provided := false
	entryAt := func(idx int) *services.IngredientIn {
		if entries[idx] == nil {
			entries[idx] = &services.IngredientIn{}
		}
		return entries[idx]
	}

	for key, vals := range form.Value {
		m := ingredientValueRe.FindStringSubmatch(key)
		if m == nil || len(vals) == 0 {
			continue
		}
		provided = true
		idx, _ := strconv.Atoi(m[1])
		entry := entryAt(idx)
		switch m[2] {
		case "id":
			if id, err := strconv.ParseUint(vals[0], 10, 64); err == nil {
				uid := uint(id)
				entry.ID = &uid
			}
		case "name":
			entry.Name = vals[0]
		case "description":
			entry.Description = vals[0]
		}
	}
	for key, files := range form.File {
		m := ingredientFileRe.FindStringSubmatch(key)
		if m == nil || len(files) == 0 {
			continue
		}
		provided = true
		idx, _ := strconv.Atoi(m[1])
		entryAt(idx).Image = files[0]
	}

	indices := make([]int, 0, len(entries))
	for idx := range entries {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	ingredients := make([]services.IngredientIn, 0, len(entries))
	for _, idx := range indices {
		ingredients = append(ingredients, *entries[idx])
	}
	return in, image, ingredients, provided, nil
}

func formPrice(c *gin.Context, key string) (*float64, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, &services.ValidationError{
			Fields: map[string][]string{key: {"The " + key + " must be a number of at least 0."}},
		}
	}
	return &v, nil
}
