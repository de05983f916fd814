package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// home godoc
// @Summary Service banner
// @Description Returns service name and status
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "finbooks",
		"status":  "ok",
	})
}
