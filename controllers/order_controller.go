package controllers

import (
	"net/http"
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// POST /orders/place-from-cart
func (h *OrderController) PlaceFromCart(c *gin.Context) {
	var req services.DeliveryDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	order, err := h.Svc.PlaceOrderFromCart(utils.CurrentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed from cart successfully",
		"order":   order,
	})
}

// POST /orders/quick-order
func (h *OrderController) QuickOrder(c *gin.Context) {
	var req services.QuickOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	order, err := h.Svc.QuickOrder(utils.CurrentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Quick order placed successfully",
		"order":   order,
	})
}

// GET /orders?page=&per_page=
func (h *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	orders, total, err := h.Svc.ListForUser(utils.CurrentUserID(c), page, perPage)
	if err != nil {
		handleServiceError(c, err, "Orders not found")
		return
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"data":         orders,
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
			"last_page":    lastPage,
		},
	})
}

// GET /orders/:id
func (h *OrderController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Order not found")
		return
	}
	order, err := h.Svc.DetailForUser(utils.CurrentUserID(c), uint(id))
	if err != nil {
		handleServiceError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// POST /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Order not found")
		return
	}
	order, err := h.Svc.Cancel(utils.CurrentUserID(c), uint(id))
	if err != nil {
		handleServiceError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// PATCH /orders/:id/status (admin)
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "Order not found")
		return
	}
	var req struct {
		Status entity.OrderStatus `json:"status" binding:"required,oneof=pending confirmed preparing out_for_delivery delivered cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	order, err := h.Svc.UpdateStatus(uint(id), req.Status)
	if err != nil {
		handleServiceError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
