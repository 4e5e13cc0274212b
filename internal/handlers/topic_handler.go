package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	Service *service.TopicService
}

func NewTopicHandler(s *service.TopicService) *TopicHandler {
	return &TopicHandler{Service: s}
}

// ListTopics returns a subject's topics in creation order.
func (h *TopicHandler) ListTopics(c *gin.Context) {
	userID := middleware.UserID(c)
	topics, err := h.Service.ListTopics(context.Background(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list topics")
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *TopicHandler) GetTopic(c *gin.Context) {
	userID := middleware.UserID(c)
	topic, err := h.Service.GetTopic(context.Background(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get topic")
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req struct {
		SubjectID string `json:"subject_id" binding:"required"`
		Title     string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	topic, err := h.Service.CreateTopic(context.Background(), userID, req.SubjectID, req.Title)
	if err != nil {
		respondError(c, err, "Failed to create topic")
		return
	}
	c.JSON(http.StatusCreated, topic)
}

func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	userID := middleware.UserID(c)
	topic, err := h.Service.UpdateTopic(context.Background(), userID, c.Param("id"), req.Title)
	if err != nil {
		respondError(c, err, "Failed to update topic")
		return
	}
	c.JSON(http.StatusOK, topic)
}

// DeleteTopic removes the topic together with its flashcards.
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.Service.DeleteTopic(context.Background(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete topic")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic deleted successfully"})
}
