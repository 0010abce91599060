package controllers

import (
	"net/http"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct{ Svc *services.UserService }

func NewUserController(s *services.UserService) *UserController {
	return &UserController{Svc: s}
}

// GET /users?page=&per_page=&q= (admin)
func (h *UserController) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	users, total, err := h.Svc.List(page, perPage, c.Query("q"))
	if err != nil {
		handleServiceError(c, err, "Users not found")
		return
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	c.JSON(http.StatusOK, gin.H{
		"data":           users,
		"current_page":   page,
		"per_page":       perPage,
		"total":          total,
		"last_page":      lastPage,
		"has_more_pages": page < lastPage,
	})
}

// GET /users/:id (admin)
func (h *UserController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "User not found")
		return
	}
	user, err := h.Svc.Get(uint(id))
	if err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /users/:id (admin, multipart for the avatar)
func (h *UserController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "User not found")
		return
	}
	var req services.UserUpdateIn
	if err := c.ShouldBind(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	image, _ := c.FormFile("image")

	user, err := h.Svc.Update(uint(id), &req, image)
	if err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DELETE /users/:id (admin)
func (h *UserController) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.NotFound(c, "User not found")
		return
	}
	if err := h.Svc.Delete(uint(id)); err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
