package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-firewatch/scenarios"
)

// GetScenarios handles GET /scenarios.
func GetScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios.GetAll()})
}

// GetScenarioByID handles GET /scenarios/:id.
func GetScenarioByID(c *gin.Context) {
	s, ok := scenarios.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}
