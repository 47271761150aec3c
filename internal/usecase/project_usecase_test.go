package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
	"LandPlan-App/internal/domain/service"
	"LandPlan-App/internal/infrastructure/ai"
	"LandPlan-App/internal/infrastructure/elevation"
	repoImpl "LandPlan-App/internal/repository"
)

// 約1km四方の区画
func testBoundary() []model.LatLng {
	return []model.LatLng{
		{Lat: 38.5000, Lng: -92.5000},
		{Lat: 38.5000, Lng: -92.4885},
		{Lat: 38.5090, Lng: -92.4885},
		{Lat: 38.5090, Lng: -92.5000},
		{Lat: 38.5000, Lng: -92.5000},
	}
}

func testViewport() model.Viewport {
	return model.Viewport{North: 38.5090, South: 38.5000, East: -92.4885, West: -92.5000}
}

func newTestProjectUseCase() ProjectUseCase {
	return NewProjectUseCase(
		repoImpl.NewMemoryProjectRepository(),
		service.NewHexIndexService(),
		elevation.NewStaticProvider(func(p model.LatLng) float64 { return 200 + (p.Lat-38.5)*2000 }),
		ai.NewDetectionParser(),
		ProjectSettings{BaseResolution: 10, PrevailingWind: model.CompassW},
	)
}

func createTestProject(t *testing.T, uc ProjectUseCase) *model.ProjectResponse {
	t.Helper()
	resp, err := uc.CreateProject(context.Background(), &model.CreateProjectRequest{Name: "Back 40", Boundary: testBoundary()})
	require.NoError(t, err)
	return resp
}

func TestCreateProject(t *testing.T) {
	uc := newTestProjectUseCase()
	resp := createTestProject(t, uc)

	cells, err := service.NewHexIndexService().CellsCoveringPolygon(testBoundary(), 10)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Project.ID)
	assert.Equal(t, "Back 40", resp.Project.Name)
	assert.Equal(t, 10, resp.Project.Resolution)
	assert.InDelta(t, 247.5, resp.Project.TotalAcres, 2)
	assert.Equal(t, len(cells), resp.Statistics.TotalCells)
	assert.Equal(t, len(cells), resp.Statistics.PerTerrainCounts[model.TerrainUnclassified])

	grid, err := uc.GetGrid(context.Background(), resp.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, testBoundary(), grid.Boundary)

	assert.Len(t, uc.ListProjects(context.Background()), 1)

	got, err := uc.GetProject(context.Background(), resp.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.BoundaryWKT, got.BoundaryWKT)
	assert.Contains(t, got.BoundaryWKT, "POLYGON")
}

func TestCreateProjectCustomResolutionAndErrors(t *testing.T) {
	uc := newTestProjectUseCase()

	res := 9
	resp, err := uc.CreateProject(context.Background(), &model.CreateProjectRequest{Boundary: testBoundary(), Resolution: &res})
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Project.Resolution)

	bad := []model.LatLng{{Lat: 95, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 2, Lng: 0}}
	_, err = uc.CreateProject(context.Background(), &model.CreateProjectRequest{Boundary: bad})
	assert.ErrorIs(t, err, model.ErrInvalidGeometry)
}

func TestProjectNotFound(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()

	_, err := uc.GetGrid(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrProjectNotFound)
	_, err = uc.GetStatistics(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrProjectNotFound)
	_, err = uc.Enrich(ctx, "missing", "")
	assert.ErrorIs(t, err, model.ErrProjectNotFound)
	assert.ErrorIs(t, uc.DeleteProject(ctx, "missing"), model.ErrProjectNotFound)
}

func TestUpdateCellMarksUserModified(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)
	grid, err := uc.GetGrid(ctx, resp.Project.ID)
	require.NoError(t, err)
	id := grid.SortedIDs()[0]

	rec, err := uc.UpdateCell(ctx, resp.Project.ID, id, model.CellPatch{Terrain: model.TerrainPtr(model.TerrainFoodPlot)})
	require.NoError(t, err)
	assert.Equal(t, model.TerrainFoodPlot, rec.Terrain)
	assert.True(t, rec.UserModified)

	cells, err := uc.GetCellsByTerrain(ctx, resp.Project.ID, model.TerrainFoodPlot)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, id, cells[0].ID)

	_, err = uc.UpdateCell(ctx, resp.Project.ID, model.CellID(12345), model.CellPatch{Terrain: model.TerrainPtr(model.TerrainWater)})
	assert.ErrorIs(t, err, model.ErrCellNotFound)
}

func TestUpdateCellsBeddingScenario(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)
	grid, err := uc.GetGrid(ctx, resp.Project.ID)
	require.NoError(t, err)

	ids := grid.SortedIDs()[:10]
	updates := make([]model.CellUpdate, 0, 11)
	for _, id := range ids {
		updates = append(updates, model.CellUpdate{ID: id, Patch: model.CellPatch{Terrain: model.TerrainPtr(model.TerrainBedding)}})
	}
	updates = append(updates, model.CellUpdate{ID: model.CellID(99), Patch: model.CellPatch{Terrain: model.TerrainPtr(model.TerrainBedding)}})

	result, err := uc.UpdateCells(ctx, resp.Project.ID, updates)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Applied)
	assert.Equal(t, []model.CellID{99}, result.Skipped)
	assert.Equal(t, 10, result.Statistics.PerTerrainCounts[model.TerrainBedding])

	bedding, err := uc.GetCellsByTerrain(ctx, resp.Project.ID, model.TerrainBedding)
	require.NoError(t, err)
	require.Len(t, bedding, 10)
	for i, rec := range bedding {
		assert.Equal(t, ids[i], rec.ID)
		assert.True(t, rec.UserModified)
	}
}

func TestApplyDetections(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)

	result, err := uc.ApplyDetections(ctx, resp.Project.ID, &model.DetectionRequest{
		Viewport: testViewport(),
		Detections: []model.Detection{
			{Label: "timber", Box2D: [4]int{0, 0, 1000, 1000}, Confidence: 0.9},
			{Label: "pond", Box2D: [4]int{400, 400, 600, 600}, Confidence: 0.3},
			{Label: "parking lot", Box2D: [4]int{0, 0, 100, 100}, Confidence: 0.9},
			{Label: "water", Box2D: [4]int{0, 0, 1200, 100}, Confidence: 0.9},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 4)

	assert.True(t, result.Results[0].Accepted)
	assert.Equal(t, model.TerrainHeavyTimber, result.Results[0].Terrain)
	assert.Equal(t, resp.Statistics.TotalCells, result.Results[0].CellCount)

	assert.False(t, result.Results[1].Accepted)
	assert.Contains(t, result.Results[1].Reason, "confidence")
	assert.False(t, result.Results[2].Accepted)
	assert.Equal(t, "unknown label", result.Results[2].Reason)
	assert.False(t, result.Results[3].Accepted)

	assert.Equal(t, resp.Statistics.TotalCells, result.UpdatedCells)
	assert.Equal(t, resp.Statistics.TotalCells, result.Statistics.PerTerrainCounts[model.TerrainHeavyTimber])

	grid, err := uc.GetGrid(ctx, resp.Project.ID)
	require.NoError(t, err)
	for _, rec := range grid.Cells {
		assert.True(t, rec.UserModified)
		require.NotNil(t, rec.Confidence)
		assert.Equal(t, 0.9, *rec.Confidence)
	}
}

func TestApplyDetectionsFromRawOutput(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)

	raw := "```json\n[{\"label\": \"food plot\", \"box_2d\": [0, 0, 300, 300], \"confidence\": 0.8}]\n```"
	precision := model.PrecisionResolution
	result, err := uc.ApplyDetections(ctx, resp.Project.ID, &model.DetectionRequest{
		Viewport:   testViewport(),
		Raw:        raw,
		Resolution: &precision,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Accepted)
	assert.Greater(t, result.UpdatedCells, 0)
	assert.Less(t, result.UpdatedCells, resp.Statistics.TotalCells)
	assert.Equal(t, result.UpdatedCells, result.Statistics.PerTerrainCounts[model.TerrainFoodPlot])
}

func TestApplyDetectionsErrors(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)

	_, err := uc.ApplyDetections(ctx, resp.Project.ID, &model.DetectionRequest{Viewport: testViewport(), Raw: "nothing found"})
	assert.ErrorIs(t, err, ai.ErrNoDetections)

	coarse := 8
	_, err = uc.ApplyDetections(ctx, resp.Project.ID, &model.DetectionRequest{Viewport: testViewport(), Resolution: &coarse})
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestEnrichWritesElevationAndPermeability(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)

	result, err := uc.Enrich(ctx, resp.Project.ID, "")
	require.NoError(t, err)
	assert.Len(t, result.Analyses, resp.Statistics.TotalCells)

	grid, err := uc.GetGrid(ctx, resp.Project.ID)
	require.NoError(t, err)
	for _, rec := range grid.Cells {
		require.NotNil(t, rec.Elevation)
		require.NotNil(t, rec.Permeability)
		assert.False(t, rec.UserModified)
	}

	stats, err := uc.GetStatistics(ctx, resp.Project.ID)
	require.NoError(t, err)
	assert.Greater(t, stats.AvgPermeability, 0.0)
}

func TestGridGeoJSON(t *testing.T) {
	uc := newTestProjectUseCase()
	resp := createTestProject(t, uc)

	fc, err := uc.GetGridGeoJSON(context.Background(), resp.Project.ID)
	require.NoError(t, err)
	assert.Len(t, fc.Features, resp.Statistics.TotalCells+1)
	assert.Equal(t, "boundary", fc.Features[0].ID)
}

func TestDeleteProject(t *testing.T) {
	uc := newTestProjectUseCase()
	ctx := context.Background()
	resp := createTestProject(t, uc)

	require.NoError(t, uc.DeleteProject(ctx, resp.Project.ID))
	_, err := uc.GetProject(ctx, resp.Project.ID)
	assert.ErrorIs(t, err, model.ErrProjectNotFound)
	assert.Empty(t, uc.ListProjects(ctx))
}

// replacingGridRepository 書き込みの直前に別のグリッドへ置き換わるセルストア
type replacingGridRepository struct {
	repository.GridRepository
	next *model.Grid
}

func (r *replacingGridRepository) SetCells(updates []model.CellUpdate) (*model.Grid, []model.CellID) {
	if r.next != nil {
		r.GridRepository.ReplaceGrid(r.next)
		r.next = nil
	}
	return r.GridRepository.SetCells(updates)
}

// singleProjectRepository セルストアを1つだけ持つプロジェクト登録簿
type singleProjectRepository struct {
	project model.Project
	store   repository.GridRepository
}

func (r *singleProjectRepository) Create(project model.Project, grid *model.Grid) repository.GridRepository {
	r.project = project
	r.store.ReplaceGrid(grid)
	return r.store
}

func (r *singleProjectRepository) Get(id string) (model.Project, repository.GridRepository, error) {
	if id != r.project.ID {
		return model.Project{}, nil, model.ErrProjectNotFound
	}
	return r.project, r.store, nil
}

func (r *singleProjectRepository) List() []model.Project { return []model.Project{r.project} }

func (r *singleProjectRepository) Delete(string) error { return nil }

func TestUpdateCellsReportsCellsReplacedBeforeWrite(t *testing.T) {
	ids, err := service.NewHexIndexService().CellsCoveringPolygon(testBoundary(), 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ids), 5)

	store := &replacingGridRepository{
		GridRepository: repoImpl.NewMemoryGridRepository(),
		next:           model.NewGrid(testBoundary(), 10, 0, ids[:2]),
	}
	projects := &singleProjectRepository{project: model.Project{ID: "p1"}, store: store}
	projects.store.ReplaceGrid(model.NewGrid(testBoundary(), 10, 0, ids))

	uc := NewProjectUseCase(projects, service.NewHexIndexService(), elevation.NewFlatProvider(0), ai.NewDetectionParser(), ProjectSettings{})

	updates := make([]model.CellUpdate, 0, 5)
	for _, id := range ids[:5] {
		updates = append(updates, model.CellUpdate{ID: id, Patch: model.CellPatch{Terrain: model.TerrainPtr(model.TerrainWater)}})
	}
	result, err := uc.UpdateCells(context.Background(), "p1", updates)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, ids[2:5], result.Skipped)
	assert.Equal(t, 2, result.Statistics.TotalCells)
	assert.Equal(t, 2, result.Statistics.PerTerrainCounts[model.TerrainWater])
}
