package controllers

import (
	"errors"
	"net/http"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc       *services.AuthService
	CookieTTL int // seconds
}

func NewAuthController(s *services.AuthService, cookieTTL int) *AuthController {
	return &AuthController{Svc: s, CookieTTL: cookieTTL}
}

func (h *AuthController) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt_token", token, maxAge, "/", "", false, true)
}

// POST /register
func (h *AuthController) Register(c *gin.Context) {
	var req struct {
		Email                string `json:"email" binding:"required,email"`
		Password             string `json:"password" binding:"required,min=6"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	user, err := h.Svc.Register(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"user":    user,
	})
}

// POST /login
func (h *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BindError(c, err)
		return
	}
	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			resp.Unauthorized(c, "Invalid credentials")
			return
		}
		handleServiceError(c, err, "")
		return
	}
	h.setTokenCookie(c, token, h.CookieTTL)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user":    user,
	})
}

// POST /logout
func (h *AuthController) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// POST /refresh
func (h *AuthController) Refresh(c *gin.Context) {
	token, err := h.Svc.Refresh(utils.CurrentUserID(c))
	if err != nil {
		resp.Unauthorized(c, "Could not refresh token")
		return
	}
	h.setTokenCookie(c, token, h.CookieTTL)
	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed successfully"})
}

// GET /user
func (h *AuthController) Me(c *gin.Context) {
	user, err := h.Svc.Profile(utils.CurrentUserID(c))
	if err != nil {
		handleServiceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
