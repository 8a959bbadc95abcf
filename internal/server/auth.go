package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtslabs/mts/internal/service"
)

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type AuthHandler struct {
	auth *service.AuthService
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Pass string `json:"pass" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Name, req.Pass)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"token": token,
	})
}

// CreateUser registers a new non-admin user. Runs behind RequireAdmin.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Pass string `json:"pass" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), req.Name, req.Pass, false)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
