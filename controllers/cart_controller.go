package controllers

import (
	"net/http"
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController {
	return &CartController{Svc: s}
}

// GET /cart
func (h *CartController) Show(c *gin.Context) {
	cart, err := h.Svc.Show(utils.CurrentUserID(c))
	if err != nil {
		handleServiceError(c, err, "Cart not found")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// POST /cart/add
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	if err := h.Svc.Add(utils.CurrentUserID(c), &req); err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

// POST /cart/update-quantity
func (h *CartController) UpdateQuantity(c *gin.Context) {
	var req struct {
		services.CartLineIn
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	if err := h.Svc.UpdateQuantity(utils.CurrentUserID(c), &req.CartLineIn, req.Quantity); err != nil {
		handleServiceError(c, err, "Cart item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
}

// POST /cart/update-selection/:cartItemId
func (h *CartController) UpdateSelection(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("cartItemId"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Cart item not found")
		return
	}
	var req struct {
		Selected *bool `json:"selected" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	if err := h.Svc.SetSelected(uint(itemID), *req.Selected); err != nil {
		handleServiceError(c, err, "Cart item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Selection updated"})
}

// POST /cart/remove
func (h *CartController) Remove(c *gin.Context) {
	var req services.CartLineIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	if err := h.Svc.Remove(utils.CurrentUserID(c), &req); err != nil {
		handleServiceError(c, err, "Cart not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}
