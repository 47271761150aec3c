package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter はAPIのルーティングを設定したGinエンジンを返す
func NewRouter(projectHandler *ProjectHandler, featureHandler *FeatureHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "LandPlan-App"})
	})

	projects := r.Group("/projects")
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.ListProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/grid", projectHandler.GetGrid)
		projects.GET("/:id/geojson", projectHandler.GetGridGeoJSON)
		projects.GET("/:id/stats", projectHandler.GetStatistics)
		projects.GET("/:id/cells", projectHandler.GetCells)
		projects.PUT("/:id/cells/:cellId", projectHandler.UpdateCell)
		projects.PATCH("/:id/cells", projectHandler.UpdateCells)
		projects.POST("/:id/detections", projectHandler.ApplyDetections)
		projects.POST("/:id/enrich", projectHandler.Enrich)
		projects.POST("/:id/features/analyze", featureHandler.AnalyzeFeatures)
	}

	return r
}
