package api

import (
	"net/http"

	"studydeck/study-api/model"
	"studydeck/study-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type documentCreateBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *API) DocumentCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data documentCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.TitleValidator(data.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.ContentValidator(data.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	doc := model.Document{
		UserID:  userID,
		Title:   data.Title,
		Content: data.Content,
	}

	if err := a.DB.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, doc)
}
