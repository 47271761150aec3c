package repository

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"LandPlan-App/internal/domain/hexgrid"
	"LandPlan-App/internal/domain/model"
)

// LatLngsToRing 座標列を閉じた orb.Ring に変換
func LatLngsToRing(coords []model.LatLng) orb.Ring {
	return model.ToRing(coords)
}

// BoundaryToWKT 境界ポリゴンをWKT文字列に変換（頂点が3未満なら空文字）
func BoundaryToWKT(boundary []model.LatLng) string {
	if model.DistinctVertexCount(boundary) < 3 {
		return ""
	}
	return wkt.MarshalString(orb.Polygon{LatLngsToRing(boundary)})
}

// CellToFeature セル1件を GeoJSON Feature（六角形ポリゴン）に変換
func CellToFeature(rec model.CellRecord) (*geojson.Feature, error) {
	boundary, err := hexgrid.Boundary(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("セル %s の境界取得失敗: %w", rec.ID, err)
	}

	feature := geojson.NewFeature(orb.Polygon{LatLngsToRing(boundary)})
	feature.ID = rec.ID.String()
	feature.Properties["terrain"] = string(rec.Terrain)
	feature.Properties["user_modified"] = rec.UserModified
	if rec.Elevation != nil {
		feature.Properties["elevation"] = *rec.Elevation
	}
	if rec.Permeability != nil {
		feature.Properties["permeability"] = *rec.Permeability
	}
	if rec.Confidence != nil {
		feature.Properties["confidence"] = *rec.Confidence
	}
	return feature, nil
}

// GridToFeatureCollection グリッドをオーバーレイ描画用の FeatureCollection に変換
// 境界ポリゴンが先頭、続いてセルをID昇順で並べる
func GridToFeatureCollection(grid *model.Grid) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if grid == nil {
		return fc, nil
	}

	if model.DistinctVertexCount(grid.Boundary) >= 3 {
		boundary := geojson.NewFeature(orb.Polygon{LatLngsToRing(grid.Boundary)})
		boundary.ID = "boundary"
		boundary.Properties["kind"] = "boundary"
		boundary.Properties["resolution"] = grid.Resolution
		boundary.Properties["total_acres"] = grid.TotalAcres
		fc.Append(boundary)
	}

	for _, id := range grid.SortedIDs() {
		feature, err := CellToFeature(grid.Cells[id])
		if err != nil {
			return nil, err
		}
		fc.Append(feature)
	}
	return fc, nil
}
