package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with CORS and every route
func NewRouter(h *Handler, allowedOrigins string) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})
	router.GET("/health", h.HealthHandler)

	v1 := router.Group("/api/v1")
	v1.GET("/options", h.OptionsHandler)
	v1.POST("/calculate", h.CalculateHandler)
	v1.POST("/analyze", h.AnalyzeHandler)

	ws := v1.Group("/workspace")
	ws.GET("", h.GetWorkspaceHandler)
	ws.PUT("/product", h.PutProductHandler)
	ws.PATCH("/product", h.PatchProductHandler)
	ws.POST("/costs", h.AddCostHandler)
	ws.PATCH("/costs/:id", h.PatchCostHandler)
	ws.DELETE("/costs/:id", h.DeleteCostHandler)
	ws.PUT("/context", h.PutContextHandler)
	ws.PUT("/mode", h.PutModeHandler)
	ws.POST("/analyze", h.AnalyzeWorkspaceHandler)

	return router
}
