package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SubjectHandler struct {
	Service *service.SubjectService
}

func NewSubjectHandler(s *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{Service: s}
}

// ListSubjects returns the caller's subjects in creation order.
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	userID := middleware.UserID(c)
	subjects, err := h.Service.ListSubjects(context.Background(), userID)
	if err != nil {
		respondError(c, err, "Failed to list subjects")
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *SubjectHandler) GetSubject(c *gin.Context) {
	userID := middleware.UserID(c)
	subject, err := h.Service.GetSubject(context.Background(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get subject")
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	subject, err := h.Service.CreateSubject(context.Background(), userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err, "Failed to create subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	subject, err := h.Service.UpdateSubject(context.Background(), userID, c.Param("id"), req.Title, req.Description)
	if err != nil {
		respondError(c, err, "Failed to update subject")
		return
	}
	c.JSON(http.StatusOK, subject)
}

// DeleteSubject removes the subject together with its topics and cards.
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.Service.DeleteSubject(context.Background(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete subject")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
