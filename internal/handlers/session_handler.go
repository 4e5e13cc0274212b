package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartSession builds the card queue for the requested mode and returns
// the opening view with the first card front side up. Mode and id
// validation lives in the service so the error messages stay specific.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req struct {
		TestMode  string `json:"test_mode"`
		SubjectID string `json:"subject_id"`
		TopicID   string `json:"topic_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	view, err := h.Service.StartSession(context.Background(), userID, req.TestMode, req.SubjectID, req.TopicID)
	if err != nil {
		respondError(c, err, "Failed to start session")
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	userID := middleware.UserID(c)
	view, err := h.Service.GetSession(userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get session")
		return
	}
	c.JSON(http.StatusOK, view)
}

// FlipCard turns the current card over.
func (h *SessionHandler) FlipCard(c *gin.Context) {
	userID := middleware.UserID(c)
	view, err := h.Service.FlipCard(userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to flip card")
		return
	}
	c.JSON(http.StatusOK, view)
}

// MarkCard records the caller's self-assessment of the current card. The
// correct flag is a pointer so an explicit false passes validation.
func (h *SessionHandler) MarkCard(c *gin.Context) {
	var req struct {
		Correct *bool `json:"correct" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	view, err := h.Service.MarkCard(userID, c.Param("id"), *req.Correct)
	if err != nil {
		respondError(c, err, "Failed to mark card")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExitSession discards the in-memory session state. Results already
// recorded stay.
func (h *SessionHandler) ExitSession(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.Service.ExitSession(userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to exit session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session exited"})
}
