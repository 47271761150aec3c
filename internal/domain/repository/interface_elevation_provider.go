package repository

import (
	"context"

	"LandPlan-App/internal/domain/model"
)

// ElevationProvider 標高データ（DEM）の取得元
type ElevationProvider interface {
	// Elevations は各地点の標高（m）を入力と同じ順序で返す
	Elevations(ctx context.Context, points []model.LatLng) ([]float64, error)
}
