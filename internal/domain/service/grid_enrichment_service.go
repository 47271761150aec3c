package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
)

// metersPerDegree 緯度1度あたりの距離（m）
const metersPerDegree = 111195.08

// GridEnrichmentService 標高サンプルからセル毎の地形分類・寝床スコア・移動コストを導く
type GridEnrichmentService struct {
	hexIndex HexIndex
}

// NewGridEnrichmentService は新しいGridEnrichmentServiceインスタンスを作成
func NewGridEnrichmentService(hexIndex HexIndex) *GridEnrichmentService {
	return &GridEnrichmentService{hexIndex: hexIndex}
}

type cellSamples struct {
	center      model.LatLng
	neighbors   []model.LatLng
	index       int   // 中心の標高の位置
	neighborIdx []int // 近傍の標高の位置
}

// Enrich はグリッドの各セル中心と近傍の標高を取得し、解析結果と
// 標高・透過性の更新パッチを返す。グリッド自体は変更しない
func (s *GridEnrichmentService) Enrich(ctx context.Context, grid *model.Grid, provider repository.ElevationProvider, prevailingWind model.Compass) (*model.EnrichmentResult, error) {
	result := &model.EnrichmentResult{Analyses: []model.CellAnalysis{}, Updates: []model.CellUpdate{}}
	if grid == nil || len(grid.Cells) == 0 {
		return result, nil
	}

	ids := grid.SortedIDs()
	points := make([]model.LatLng, 0, len(ids)*3)
	pointIndex := make(map[model.CellID]int, len(ids)*3)
	samples := make([]cellSamples, len(ids))

	indexOf := func(id model.CellID) (int, model.LatLng, error) {
		center, err := s.hexIndex.CellCenter(id)
		if err != nil {
			return 0, model.LatLng{}, err
		}
		if idx, ok := pointIndex[id]; ok {
			return idx, center, nil
		}
		pointIndex[id] = len(points)
		points = append(points, center)
		return len(points) - 1, center, nil
	}

	for i, id := range ids {
		idx, center, err := indexOf(id)
		if err != nil {
			return nil, fmt.Errorf("セル %s の中心取得失敗: %w", id, err)
		}
		neighbors, err := s.hexIndex.CellNeighbors(id)
		if err != nil {
			return nil, fmt.Errorf("セル %s の近傍取得失敗: %w", id, err)
		}
		samples[i] = cellSamples{center: center, index: idx}
		for _, n := range neighbors {
			nIdx, nCenter, err := indexOf(n)
			if err != nil {
				return nil, fmt.Errorf("セル %s の中心取得失敗: %w", n, err)
			}
			samples[i].neighborIdx = append(samples[i].neighborIdx, nIdx)
			samples[i].neighbors = append(samples[i].neighbors, nCenter)
		}
	}

	log.Printf("🗻 標高取得開始: %dセル, %d地点", len(ids), len(points))
	elevations, err := provider.Elevations(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("標高データの取得失敗: %w", err)
	}
	if len(elevations) != len(points) {
		return nil, fmt.Errorf("標高データの件数が一致しません (要求:%d, 取得:%d)", len(points), len(elevations))
	}

	maxRidge := math.Inf(-1)
	for _, smp := range samples {
		maxRidge = math.Max(maxRidge, elevations[smp.index])
	}
	result.MaxRidgeElevation = maxRidge

	for i, id := range ids {
		analysis := s.analyzeCell(id, samples[i], elevations, maxRidge, grid.Cells[id].Terrain, prevailingWind)
		result.Analyses = append(result.Analyses, analysis)
		result.Updates = append(result.Updates, model.CellUpdate{
			ID: id,
			Patch: model.CellPatch{
				Elevation:    model.Float64Ptr(analysis.Elevation),
				Permeability: model.Float64Ptr(analysis.Permeability),
			},
		})
	}

	log.Printf("✅ 標高解析完了: %dセル (尾根最高標高 %.1fm)", len(result.Analyses), maxRidge)
	return result, nil
}

func (s *GridEnrichmentService) analyzeCell(id model.CellID, smp cellSamples, elevations []float64, maxRidge float64, terrain model.TerrainTag, wind model.Compass) model.CellAnalysis {
	elevation := elevations[smp.index]

	neighborElevations := make([]float64, len(smp.neighborIdx))
	for i, idx := range smp.neighborIdx {
		neighborElevations[i] = elevations[idx]
	}
	mean, std := NeighborhoodStats(neighborElevations)
	landform := ClassifyLandform(elevation, mean, std)

	slopePercent, aspect := slopeAndAspect(smp.center, elevation, smp.neighbors, neighborElevations)
	slopeDegrees := SlopePercentToDegrees(slopePercent)

	cost := CalculateMovementCost(slopePercent, LandCoverFor(terrain))

	return model.CellAnalysis{
		ID:                 id,
		Elevation:          elevation,
		NeighborhoodMean:   mean,
		NeighborhoodStdDev: std,
		TPI:                elevation - mean,
		Landform:           landform,
		SlopePercent:       slopePercent,
		SlopeDegrees:       slopeDegrees,
		Aspect:             aspect,
		ThermalTunnel:      IsThermalTunnel(landform, slopeDegrees),
		BeddingScore:       ScoreBedding(elevation, maxRidge, slopePercent, aspect, wind),
		MovementCost:       cost,
		Permeability:       PermeabilityFromCost(cost),
	}
}

// slopeAndAspect 近傍への高低差に平面を最小二乗で当てはめ、勾配%と下り斜面の方位を返す
// 近傍の配置が対称でなくても x・y の相関項を含む正規方程式を解く
func slopeAndAspect(center model.LatLng, elevation float64, neighbors []model.LatLng, neighborElevations []float64) (float64, model.Compass) {
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	var sxx, sxy, syy, sxz, syz float64
	for i, n := range neighbors {
		dx := (n.Lng - center.Lng) * metersPerDegree * cosLat
		dy := (n.Lat - center.Lat) * metersPerDegree
		dz := neighborElevations[i] - elevation
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
		sxz += dx * dz
		syz += dy * dz
	}

	det := sxx*syy - sxy*sxy
	if det <= 1e-9*sxx*syy {
		return 0, ""
	}
	gx := (sxz*syy - syz*sxy) / det
	gy := (syz*sxx - sxz*sxy) / det

	slope := math.Hypot(gx, gy) * 100
	if slope < 1e-9 {
		return 0, ""
	}
	// 下り方向（勾配の逆向き）の方位角
	bearing := math.Atan2(-gx, -gy) * 180 / math.Pi
	return slope, model.CompassFromBearing(bearing)
}
