package api

import (
	"errors"
	"net/http"

	"studydeck/study-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type summarizeBody struct {
	DocumentID uint `json:"document_id"`
}

// AISummarize runs the summarization workflow for one document. The request
// blocks until the upstream model answers or the configured timeout fires
func (a *API) AISummarize(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data summarizeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if data.DocumentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No document ID provided",
			"requestID": requestID,
		})
		return
	}

	doc, err := service.SummarizeDocument(c.Request.Context(), a.DB, a.AI, userID, data.DocumentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Document not found or you don't have access to it",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate summary",
			"requestID": requestID,
		})

		zap.L().Error("Summarization failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": doc.ID,
		"title":       doc.Title,
		"summary":     doc.Summary,
	})
}
