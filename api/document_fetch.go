package api

import (
	"errors"
	"net/http"
	"strconv"

	"studydeck/study-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// parseDocumentID pulls the numeric document ID out of the path. A zero
// return means the response has already been written
func parseDocumentID(c *gin.Context, requestID string) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Document ID must be a positive integer",
			"requestID": requestID,
		})
		return 0
	}

	return uint(id)
}

func (a *API) DocumentFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	docID := parseDocumentID(c, requestID)
	if docID == 0 {
		return
	}

	var doc model.Document

	// Scoping the lookup by owner means a foreign document and a missing
	// one are indistinguishable, both come back as 404
	err := a.DB.
		Where("user_id = ? AND id = ?", userID, docID).
		First(&doc).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Document not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch document from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, doc)
}
