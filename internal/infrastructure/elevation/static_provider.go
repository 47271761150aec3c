package elevation

import (
	"context"

	"LandPlan-App/internal/domain/model"
)

// SurfaceFunc 地点の標高（m）を返す関数
type SurfaceFunc func(model.LatLng) float64

// StaticProvider 関数で表した地表面から標高を返すプロバイダ（オフライン動作・テスト用）
type StaticProvider struct {
	surface SurfaceFunc
}

// NewStaticProvider は関数から標高を計算するプロバイダを生成する
func NewStaticProvider(surface SurfaceFunc) *StaticProvider {
	return &StaticProvider{surface: surface}
}

// NewFlatProvider は全地点で同じ標高を返すプロバイダを生成する
func NewFlatProvider(elevation float64) *StaticProvider {
	return NewStaticProvider(func(model.LatLng) float64 { return elevation })
}

// Elevations は各地点の標高を計算して返す
func (p *StaticProvider) Elevations(ctx context.Context, points []model.LatLng) ([]float64, error) {
	elevations := make([]float64, len(points))
	for i, pt := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		elevations[i] = p.surface(pt)
	}
	return elevations, nil
}
