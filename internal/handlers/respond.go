package handlers

import (
	"errors"
	"net/http"

	"flashcard-service/internal/deck"
	"flashcard-service/internal/generate"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the status codes the client
// distinguishes. failMessage labels the unexpected-failure case only.
func respondError(c *gin.Context, err error, failMessage string) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, deck.ErrTopicNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrMissingSubject),
		errors.Is(err, service.ErrMissingTopic):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, generate.ErrNoCards):
		c.JSON(http.StatusInternalServerError, gin.H{"error": generate.ErrNoCards.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   failMessage,
			"details": err.Error(),
		})
	}
}
