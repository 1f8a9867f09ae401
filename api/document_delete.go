package api

import (
	"net/http"

	"studydeck/study-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) DocumentDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	docID := parseDocumentID(c, requestID)
	if docID == 0 {
		return
	}

	r := a.DB.
		Where("user_id = ? AND id = ?", userID, docID).
		Delete(&model.Document{})
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete document", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	// RowsAffected tells absent and not-owned apart from a real delete
	// without a second query
	if r.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Document not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
