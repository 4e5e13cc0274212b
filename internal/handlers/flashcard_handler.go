package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type FlashcardHandler struct {
	Service *service.FlashcardService
}

func NewFlashcardHandler(s *service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{Service: s}
}

// ListFlashcards returns a topic's cards in creation order.
func (h *FlashcardHandler) ListFlashcards(c *gin.Context) {
	userID := middleware.UserID(c)
	cards, err := h.Service.ListFlashcards(context.Background(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list flashcards")
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *FlashcardHandler) GetFlashcard(c *gin.Context) {
	userID := middleware.UserID(c)
	card, err := h.Service.GetFlashcard(context.Background(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get flashcard")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *FlashcardHandler) CreateFlashcard(c *gin.Context) {
	var req struct {
		TopicID  string `json:"topic_id" binding:"required"`
		Question string `json:"question" binding:"required"`
		Answer   string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	card, err := h.Service.CreateFlashcard(context.Background(), userID, req.TopicID, req.Question, req.Answer)
	if err != nil {
		respondError(c, err, "Failed to create flashcard")
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *FlashcardHandler) UpdateFlashcard(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	card, err := h.Service.UpdateFlashcard(context.Background(), userID, c.Param("id"), req.Question, req.Answer)
	if err != nil {
		respondError(c, err, "Failed to update flashcard")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *FlashcardHandler) DeleteFlashcard(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.Service.DeleteFlashcard(context.Background(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete flashcard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flashcard deleted successfully"})
}

// GenerateFlashcards asks the LLM for draft cards on the topic's title and
// returns them for review. Nothing is saved here.
func (h *FlashcardHandler) GenerateFlashcards(c *gin.Context) {
	var req struct {
		TopicID string `json:"topic_id" binding:"required"`
		Count   int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	drafts, err := h.Service.GenerateFlashcards(c.Request.Context(), userID, req.TopicID, req.Count)
	if err != nil {
		respondError(c, err, "Failed to generate flashcards")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
		"count":  len(drafts),
	})
}
