package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)
	user, err := h.Service.GetProfile(context.Background(), userID)
	if err != nil {
		respondError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// SyncProfile mirrors the identity service's profile fields into the
// local user collection.
func (h *UserHandler) SyncProfile(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	user, err := h.Service.SyncProfile(context.Background(), userID, req.DisplayName, req.Email)
	if err != nil {
		respondError(c, err, "Failed to sync profile")
		return
	}
	c.JSON(http.StatusOK, user)
}
