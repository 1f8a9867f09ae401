package api

import (
	"errors"
	"net/http"

	"studydeck/study-api/model"
	"studydeck/study-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pointers distinguish "field absent" from "field set to its zero value",
// only the fields present in the body are applied
type documentUpdateBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Summary *string `json:"summary"`
}

func (a *API) DocumentUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	docID := parseDocumentID(c, requestID)
	if docID == 0 {
		return
	}

	var data documentUpdateBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{}

	if data.Title != nil {
		if err := validators.TitleValidator(*data.Title); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		updates["title"] = *data.Title
	}

	if data.Content != nil {
		if err := validators.ContentValidator(*data.Content); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		updates["content"] = *data.Content
	}

	if data.Summary != nil {
		updates["summary"] = *data.Summary
	}

	var doc model.Document

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

	if len(updates) > 0 {
		err = a.DB.
			Model(&doc).
			Updates(updates).
			Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update document", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if data.Title != nil {
			doc.Title = *data.Title
		}
		if data.Content != nil {
			doc.Content = *data.Content
		}
		if data.Summary != nil {
			doc.Summary = data.Summary
		}
	}

	c.JSON(http.StatusOK, doc)
}
