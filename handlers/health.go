package handlers

import (
	"net/http"

	"walegrills/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency check. It always answers 200 so load
// balancers keep routing while a dependency recovers.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wale Grills checkout", "dependencies": status})
}
