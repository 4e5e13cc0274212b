package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/middleware"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// ListMyResults returns the caller's study history, newest first,
// optionally narrowed to one subject.
func (h *ResultHandler) ListMyResults(c *gin.Context) {
	userID := middleware.UserID(c)

	var results interface{}
	var err error
	if subjectID := c.Query("subject_id"); subjectID != "" {
		results, err = h.Service.GetResultsBySubject(context.Background(), userID, subjectID)
	} else {
		results, err = h.Service.GetResultsByUser(context.Background(), userID)
	}
	if err != nil {
		respondError(c, err, "Failed to list results")
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetResultsByUser serves the gateway's public results route for a user id
// in the path.
func (h *ResultHandler) GetResultsByUser(c *gin.Context) {
	results, err := h.Service.GetResultsByUser(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}
