package api

import (
	"net/http"

	"studydeck/study-api/model"

	"github.com/gin-gonic/gin"
)

// UserMe returns the identity of whoever owns the presented token
func (a *API) UserMe(c *gin.Context) {
	user := c.MustGet("user").(model.User)

	c.JSON(http.StatusOK, user)
}
