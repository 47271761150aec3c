package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/usecase"
)

// FeatureHandler は地物解析APIのハンドラー
type FeatureHandler struct {
	featureUseCase usecase.FeatureUseCase
}

// NewFeatureHandler は新しいFeatureHandlerインスタンスを作成
func NewFeatureHandler(featureUseCase usecase.FeatureUseCase) *FeatureHandler {
	return &FeatureHandler{featureUseCase: featureUseCase}
}

// AnalyzeFeatures は地物の空間関係を解析するエンドポイント
// POST /projects/:id/features/analyze
func (h *FeatureHandler) AnalyzeFeatures(c *gin.Context) {
	var req model.FeatureAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	for _, f := range req.Features {
		switch f.Geometry {
		case model.GeometryPolygon, model.GeometryLine, model.GeometryPoint:
		default:
			respondError(c, "バリデーションエラー", &ValidationError{Field: "features.geometry", Message: "polygon, line, pointのいずれかを指定してください"})
			return
		}
	}

	response, err := h.featureUseCase.AnalyzeFeatures(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "地物の解析に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}
