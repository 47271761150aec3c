package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"LandPlan-App/internal/domain/helper"
	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
	"LandPlan-App/internal/domain/service"
	repoImpl "LandPlan-App/internal/repository"
)

// ProjectUseCase プロジェクトのグリッド生成・編集・解析
type ProjectUseCase interface {
	// CreateProject は境界ポリゴンを被覆するグリッドを生成してプロジェクトを登録する
	CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error)
	// ListProjects は登録済みプロジェクトの一覧
	ListProjects(ctx context.Context) []model.Project
	// GetProject はプロジェクトの概要と集計値
	GetProject(ctx context.Context, projectID string) (*model.ProjectResponse, error)
	// GetGrid はグリッドのスナップショット
	GetGrid(ctx context.Context, projectID string) (*model.Grid, error)
	// GetGridGeoJSON はオーバーレイ描画用のGeoJSON
	GetGridGeoJSON(ctx context.Context, projectID string) (*geojson.FeatureCollection, error)
	// GetStatistics はグリッドの集計値
	GetStatistics(ctx context.Context, projectID string) (model.GridStatistics, error)
	// GetCellsByTerrain は指定した地表分類のセル
	GetCellsByTerrain(ctx context.Context, projectID string, tag model.TerrainTag) ([]model.CellRecord, error)
	// UpdateCell は手動による単一セル編集（ユーザー編集済みになる）
	UpdateCell(ctx context.Context, projectID string, cellID model.CellID, patch model.CellPatch) (*model.CellRecord, error)
	// UpdateCells は手動による複数セル編集。存在しないIDは読み飛ばす
	UpdateCells(ctx context.Context, projectID string, updates []model.CellUpdate) (*model.BatchCellUpdateResponse, error)
	// ApplyDetections はビジョンモデルの検出結果をグリッドに反映する
	ApplyDetections(ctx context.Context, projectID string, req *model.DetectionRequest) (*model.DetectionResponse, error)
	// Enrich は標高データから地形を解析し、標高と透過性をグリッドに反映する
	Enrich(ctx context.Context, projectID string, prevailingWind model.Compass) (*model.EnrichmentResult, error)
	// DeleteProject はグリッドをリセットしてプロジェクトを削除する
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectSettings ユースケースの既定値
type ProjectSettings struct {
	BaseResolution int
	PrevailingWind model.Compass
}

// projectUseCaseImpl はProjectUseCaseの実装
type projectUseCaseImpl struct {
	projects          repository.ProjectRepository
	hexIndex          service.HexIndex
	visionTranslator  *service.VisionTranslator
	enrichmentService *service.GridEnrichmentService
	elevationProvider repository.ElevationProvider
	detectionParser   repository.DetectionParser
	settings          ProjectSettings
	now               func() time.Time
}

// NewProjectUseCase は新しいProjectUseCaseインスタンスを作成
func NewProjectUseCase(
	projects repository.ProjectRepository,
	hexIndex service.HexIndex,
	elevationProvider repository.ElevationProvider,
	detectionParser repository.DetectionParser,
	settings ProjectSettings,
) ProjectUseCase {
	if settings.BaseResolution == 0 {
		settings.BaseResolution = model.DefaultBaseResolution
	}
	if !settings.PrevailingWind.Valid() {
		settings.PrevailingWind = model.CompassW
	}
	return &projectUseCaseImpl{
		projects:          projects,
		hexIndex:          hexIndex,
		visionTranslator:  service.NewVisionTranslator(hexIndex),
		enrichmentService: service.NewGridEnrichmentService(hexIndex),
		elevationProvider: elevationProvider,
		detectionParser:   detectionParser,
		settings:          settings,
		now:               time.Now,
	}
}

// CreateProject は境界ポリゴンを被覆するグリッドを生成してプロジェクトを登録する
func (u *projectUseCaseImpl) CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error) {
	resolution := u.settings.BaseResolution
	if req.Resolution != nil {
		resolution = *req.Resolution
	}
	log.Printf("🚀 グリッド生成開始 (頂点: %d, 解像度: %d)", len(req.Boundary), resolution)

	ids, err := u.hexIndex.CellsCoveringPolygon(req.Boundary, resolution)
	if err != nil {
		return nil, fmt.Errorf("グリッド生成に失敗: %w", err)
	}
	if len(ids) == 0 {
		log.Printf("⚠️ 境界ポリゴンが退化しているためセルがありません")
	}

	project := model.Project{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Resolution: resolution,
		TotalAcres: helper.PolygonAcres(req.Boundary),
		CreatedAt:  u.now(),
	}
	grid := model.NewGrid(req.Boundary, resolution, project.TotalAcres, ids)
	store := u.projects.Create(project, grid)

	log.Printf("✅ グリッド生成完了 (ID: %s, %dセル, %.1fエーカー)", project.ID, len(ids), project.TotalAcres)
	return &model.ProjectResponse{
		Project:     project,
		BoundaryWKT: repoImpl.BoundaryToWKT(req.Boundary),
		Statistics:  store.Statistics(),
	}, nil
}

// ListProjects は登録済みプロジェクトの一覧
func (u *projectUseCaseImpl) ListProjects(ctx context.Context) []model.Project {
	return u.projects.List()
}

// GetProject はプロジェクトの概要と集計値
func (u *projectUseCaseImpl) GetProject(ctx context.Context, projectID string) (*model.ProjectResponse, error) {
	project, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}
	return &model.ProjectResponse{
		Project:     project,
		BoundaryWKT: repoImpl.BoundaryToWKT(store.Snapshot().Boundary),
		Statistics:  store.Statistics(),
	}, nil
}

// GetGrid はグリッドのスナップショット
func (u *projectUseCaseImpl) GetGrid(ctx context.Context, projectID string) (*model.Grid, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}
	return store.Snapshot(), nil
}

// GetGridGeoJSON はオーバーレイ描画用のGeoJSON
func (u *projectUseCaseImpl) GetGridGeoJSON(ctx context.Context, projectID string) (*geojson.FeatureCollection, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}
	fc, err := repoImpl.GridToFeatureCollection(store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("GeoJSON変換に失敗: %w", err)
	}
	return fc, nil
}

// GetStatistics はグリッドの集計値
func (u *projectUseCaseImpl) GetStatistics(ctx context.Context, projectID string) (model.GridStatistics, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return model.GridStatistics{}, err
	}
	return store.Statistics(), nil
}

// GetCellsByTerrain は指定した地表分類のセル
func (u *projectUseCaseImpl) GetCellsByTerrain(ctx context.Context, projectID string, tag model.TerrainTag) ([]model.CellRecord, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}
	return store.CellsByTerrain(tag), nil
}

// UpdateCell は手動による単一セル編集（ユーザー編集済みになる）
func (u *projectUseCaseImpl) UpdateCell(ctx context.Context, projectID string, cellID model.CellID, patch model.CellPatch) (*model.CellRecord, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}

	patch.UserModified = model.BoolPtr(true)
	grid, err := store.SetCell(cellID, patch)
	if err != nil {
		log.Printf("⚠️ セル編集をスキップ (プロジェクト: %s): %v", projectID, err)
		return nil, err
	}
	rec := grid.Cells[cellID]
	return &rec, nil
}

// UpdateCells は手動による複数セル編集。存在しないIDは読み飛ばす
func (u *projectUseCaseImpl) UpdateCells(ctx context.Context, projectID string, updates []model.CellUpdate) (*model.BatchCellUpdateResponse, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}

	edits := make([]model.CellUpdate, 0, len(updates))
	for _, upd := range updates {
		upd.Patch.UserModified = model.BoolPtr(true)
		edits = append(edits, upd)
	}

	grid, skipped := store.SetCells(edits)
	if len(skipped) > 0 {
		log.Printf("⚠️ グリッド外のセル%d件を読み飛ばしました (プロジェクト: %s)", len(skipped), projectID)
	}
	return &model.BatchCellUpdateResponse{
		Applied:    len(edits) - len(skipped),
		Skipped:    skipped,
		Statistics: grid.Statistics(),
	}, nil
}

// ApplyDetections はビジョンモデルの検出結果をグリッドに反映する
// 信頼度が基準未満、または地表分類に対応しないラベルの検出は採用しない
func (u *projectUseCaseImpl) ApplyDetections(ctx context.Context, projectID string, req *model.DetectionRequest) (*model.DetectionResponse, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}

	detections := req.Detections
	if req.Raw != "" {
		parsed, err := u.detectionParser.ParseDetections(req.Raw)
		if err != nil {
			return nil, fmt.Errorf("検出結果の解析に失敗: %w", err)
		}
		detections = append(append([]model.Detection{}, detections...), parsed...)
	}

	grid := store.Snapshot()
	resolution := grid.Resolution
	if req.Resolution != nil {
		resolution = *req.Resolution
	}
	if resolution < grid.Resolution {
		return nil, fmt.Errorf("検出の解像度 %d はグリッドの解像度 %d 以上である必要があります: %w", resolution, grid.Resolution, model.ErrInvalidParameter)
	}

	log.Printf("🛰️ 検出結果の反映開始 (プロジェクト: %s, %d件, 解像度: %d)", projectID, len(detections), resolution)

	results := make([]model.DetectionResult, 0, len(detections))
	updates := make([]model.CellUpdate, 0)
	touched := make(map[model.CellID]struct{})
	for _, d := range detections {
		result := model.DetectionResult{Label: d.Label}

		tag, ok := model.TerrainForLabel(d.Label)
		if !ok {
			result.Terrain = model.TerrainUnclassified
			result.Reason = "unknown label"
			results = append(results, result)
			continue
		}
		result.Terrain = tag
		if d.Confidence < model.MinDetectionConfidence {
			result.Reason = fmt.Sprintf("confidence %.2f below %.2f", d.Confidence, model.MinDetectionConfidence)
			results = append(results, result)
			continue
		}

		cells, err := u.gridCellsForBox(d.Box2D, req.Viewport, resolution, grid)
		if err != nil {
			result.Reason = err.Error()
			results = append(results, result)
			continue
		}

		for _, id := range cells {
			touched[id] = struct{}{}
			updates = append(updates, model.CellUpdate{
				ID: id,
				Patch: model.CellPatch{
					Terrain:      model.TerrainPtr(tag),
					Confidence:   model.Float64Ptr(d.Confidence),
					UserModified: model.BoolPtr(true),
				},
			})
		}
		result.Accepted = true
		result.CellCount = len(cells)
		results = append(results, result)
	}

	updated, _ := store.SetCells(updates)
	log.Printf("✅ 検出結果の反映完了 (プロジェクト: %s, %dセル更新)", projectID, len(touched))

	return &model.DetectionResponse{
		Results:      results,
		UpdatedCells: len(touched),
		Statistics:   updated.Statistics(),
	}, nil
}

// gridCellsForBox は検出ボックスが覆うセルをグリッドの解像度に揃え、グリッド内のものだけを返す
func (u *projectUseCaseImpl) gridCellsForBox(box [4]int, viewport model.Viewport, resolution int, grid *model.Grid) ([]model.CellID, error) {
	cells, err := u.visionTranslator.BoxToCells(box, viewport, resolution)
	if err != nil {
		return nil, err
	}

	seen := make(map[model.CellID]struct{}, len(cells))
	inGrid := make([]model.CellID, 0, len(cells))
	for _, id := range cells {
		if resolution != grid.Resolution {
			parent, err := u.hexIndex.CellParent(id, grid.Resolution)
			if err != nil {
				return nil, err
			}
			id = parent
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := grid.Cells[id]; ok {
			inGrid = append(inGrid, id)
		}
	}
	return inGrid, nil
}

// Enrich は標高データから地形を解析し、標高と透過性をグリッドに反映する
func (u *projectUseCaseImpl) Enrich(ctx context.Context, projectID string, prevailingWind model.Compass) (*model.EnrichmentResult, error) {
	_, store, err := u.projects.Get(projectID)
	if err != nil {
		return nil, err
	}
	if prevailingWind == "" {
		prevailingWind = u.settings.PrevailingWind
	}

	result, err := u.enrichmentService.Enrich(ctx, store.Snapshot(), u.elevationProvider, prevailingWind)
	if err != nil {
		log.Printf("❌ 標高解析に失敗 (プロジェクト: %s): %v", projectID, err)
		return nil, fmt.Errorf("標高解析に失敗: %w", err)
	}
	if _, skipped := store.SetCells(result.Updates); len(skipped) > 0 {
		log.Printf("⚠️ 解析中に置き換えられたセル%d件は反映しませんでした (プロジェクト: %s)", len(skipped), projectID)
	}
	return result, nil
}

// DeleteProject はグリッドをリセットしてプロジェクトを削除する
func (u *projectUseCaseImpl) DeleteProject(ctx context.Context, projectID string) error {
	if err := u.projects.Delete(projectID); err != nil {
		return err
	}
	log.Printf("🗑️ プロジェクト削除 (ID: %s)", projectID)
	return nil
}
