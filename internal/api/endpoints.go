package api

import (
	"encoding/json"
	"net/http"

	_ "embed"

	"github.com/gin-gonic/gin"
)

//go:embed endpoints.json
var endpointsJSON []byte

// endpointsHandler handles GET /api, serving the endpoint catalog
func endpointsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"endpoints": json.RawMessage(endpointsJSON)})
}
