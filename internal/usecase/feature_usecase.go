package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
	"LandPlan-App/internal/domain/service"
)

// FeatureUseCase 描画された地物の空間解析
type FeatureUseCase interface {
	// AnalyzeFeatures はプロジェクト境界に対する各地物のSpatialMetricsを返す
	AnalyzeFeatures(ctx context.Context, projectID string, req *model.FeatureAnalysisRequest) (*model.FeatureAnalysisResponse, error)
}

// featureUseCaseImpl はFeatureUseCaseの実装
type featureUseCaseImpl struct {
	projects       repository.ProjectRepository
	analyzer       *service.ParallelFeatureAnalyzer
	prevailingWind model.Compass
}

// NewFeatureUseCase は新しいFeatureUseCaseインスタンスを作成
func NewFeatureUseCase(projects repository.ProjectRepository, analyzer *service.ParallelFeatureAnalyzer, prevailingWind model.Compass) FeatureUseCase {
	return &featureUseCaseImpl{
		projects:       projects,
		analyzer:       analyzer,
		prevailingWind: prevailingWind,
	}
}

// AnalyzeFeatures はプロジェクト境界に対する各地物のSpatialMetricsを返す
// IDのない地物にはUUIDを割り当てる
func (u *featureUseCaseImpl) AnalyzeFeatures(ctx context.Context, projectID string, req *model.FeatureAnalysisRequest) (*model.FeatureAnalysisResponse, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}

	wind := u.prevailingWind
	if req.PrevailingWind != "" {
		parsed, ok := model.ParseCompass(req.PrevailingWind)
		if !ok {
			return nil, fmt.Errorf("卓越風向 %q は8方位ではありません: %w", req.PrevailingWind, model.ErrInvalidParameter)
		}
		wind = parsed
	}

	features := make([]model.Feature, len(req.Features))
	pointers := make([]*model.Feature, len(req.Features))
	for i := range req.Features {
		features[i] = req.Features[i]
		if features[i].ID == "" {
			features[i].ID = uuid.New().String()
		}
		pointers[i] = &features[i]
	}

	metrics, err := u.analyzer.AnalyzeAll(ctx, pointers, store.Snapshot().Boundary, wind)
	if err != nil {
		return nil, fmt.Errorf("地物の解析に失敗: %w", err)
	}
	return &model.FeatureAnalysisResponse{Features: features, Metrics: metrics}, nil
}
