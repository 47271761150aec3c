package service

import (
	"fmt"
	"sort"
	"strings"

	"LandPlan-App/internal/domain/helper"
	"LandPlan-App/internal/domain/model"
)

// FeatureAnalyzer 描画された地物と境界・他の地物との関係を計算する
// 入力が不十分な項目は "Unknown" などの表示可能な値に落とし、エラーにはしない
type FeatureAnalyzer struct{}

// NewFeatureAnalyzer は新しいFeatureAnalyzerインスタンスを作成
func NewFeatureAnalyzer() *FeatureAnalyzer {
	return &FeatureAnalyzer{}
}

// Analyze は地物1件のSpatialMetricsを計算する
// allFeatures に feature 自身が含まれていても、IDまたは同一ポインタで除外する
func (a *FeatureAnalyzer) Analyze(feature *model.Feature, boundary []model.LatLng, allFeatures []*model.Feature, prevailingWind model.Compass) model.SpatialMetrics {
	metrics := model.SpatialMetrics{
		Orientation:      model.OrientationUnknown,
		RelativePosition: model.PositionUnknown,
		Proximity:        []model.ProximityEntry{},
		WindExposure:     model.WindExposureUnknown,
	}
	if feature == nil {
		return metrics
	}

	metrics.Label = feature.Label
	if metrics.Label == "" {
		metrics.Label = feature.Kind
	}
	metrics.Notes = feature.Note

	coords := validCoordinates(feature.Coordinates)
	closed := feature.Geometry == model.GeometryPolygon

	if closed {
		metrics.Acreage = feature.AreaAcres
		if metrics.Acreage <= 0 {
			metrics.Acreage = helper.PolygonAcres(coords)
		}
	}
	if feature.Geometry != model.GeometryPoint {
		metrics.PerimeterEstimate = helper.PerimeterFeet(coords, closed)
	}

	orientation, hasOrientation := orientationOf(feature.Geometry, coords)
	if hasOrientation {
		metrics.Orientation = string(orientation)
		metrics.WindExposure = windExposure(orientation, prevailingWind)
	}

	centroid, hasCentroid := helper.CoordinateCentroid(coords)
	if hasCentroid {
		metrics.RelativePosition = relativePosition(centroid, boundary)
		metrics.Proximity = proximity(feature, centroid, allFeatures)
	}

	return metrics
}

// orientationOf 最長辺の平面方位を8方位に丸める（点は方位なし）
func orientationOf(geometry model.GeometryType, coords []model.LatLng) (model.Compass, bool) {
	if geometry == model.GeometryPoint {
		return "", false
	}
	from, to, ok := helper.LongestEdge(coords, geometry == model.GeometryPolygon)
	if !ok {
		return "", false
	}
	return model.CompassFromBearing(helper.PlanarBearing(from, to)), true
}

// relativePosition 境界の外接矩形を縦横3分割した位置（例: "North-West"、両方中央なら "Central"）
func relativePosition(centroid model.LatLng, boundary []model.LatLng) string {
	valid := validCoordinates(boundary)
	if len(valid) != len(boundary) || model.DistinctVertexCount(valid) < 3 {
		return model.PositionUnknown
	}
	bound := helper.BoundsOf(valid)
	height := bound.Max.Lat() - bound.Min.Lat()
	width := bound.Max.Lon() - bound.Min.Lon()
	if height <= 0 || width <= 0 {
		return model.PositionUnknown
	}

	parts := make([]string, 0, 2)
	switch {
	case centroid.Lat > bound.Max.Lat()-height/3:
		parts = append(parts, model.PositionNorth)
	case centroid.Lat < bound.Min.Lat()+height/3:
		parts = append(parts, model.PositionSouth)
	}
	switch {
	case centroid.Lng > bound.Max.Lon()-width/3:
		parts = append(parts, model.PositionEast)
	case centroid.Lng < bound.Min.Lon()+width/3:
		parts = append(parts, model.PositionWest)
	}

	if len(parts) == 0 {
		return model.PositionCentral
	}
	return strings.Join(parts, "-")
}

// proximity 重心間距離が1000ft以内の地物を近い順に最大5件
func proximity(feature *model.Feature, centroid model.LatLng, allFeatures []*model.Feature) []model.ProximityEntry {
	entries := make([]model.ProximityEntry, 0)
	for _, other := range allFeatures {
		if other == nil || isSameFeature(feature, other) {
			continue
		}
		otherCentroid, ok := helper.CoordinateCentroid(validCoordinates(other.Coordinates))
		if !ok {
			continue
		}
		distance := helper.DegreeDistanceFeet(centroid, otherCentroid)
		if distance > model.ProximityMaxFeet {
			continue
		}
		label := other.Label
		if label == "" {
			label = other.Kind
		}
		entries = append(entries, model.ProximityEntry{
			FeatureID:    other.ID,
			Label:        label,
			DistanceFeet: distance,
			Direction:    model.CompassFromBearing(helper.PlanarBearing(centroid, otherCentroid)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DistanceFeet < entries[j].DistanceFeet })
	if len(entries) > model.ProximityMaxResults {
		entries = entries[:model.ProximityMaxResults]
	}
	return entries
}

func isSameFeature(a, b *model.Feature) bool {
	if a == b {
		return true
	}
	return a.ID != "" && a.ID == b.ID
}

// windExposure 地物の向きと卓越風向の角度差による3段階の分類
func windExposure(orientation, wind model.Compass) string {
	orientationDeg, ok := orientation.Degrees()
	if !ok {
		return model.WindExposureUnknown
	}
	windDeg, ok := wind.Degrees()
	if !ok {
		return model.WindExposureUnknown
	}

	diff := helper.AngularDifference(orientationDeg, windDeg)
	switch {
	case diff < model.WindExposedMaxAngle:
		return fmt.Sprintf(model.WindExposedFormat, wind)
	case diff > model.WindShelteredMinAngle:
		return model.WindExposureSheltered
	default:
		return model.WindExposurePartial
	}
}

// validCoordinates 計算に使えない座標を除く
func validCoordinates(coords []model.LatLng) []model.LatLng {
	valid := make([]model.LatLng, 0, len(coords))
	for _, c := range coords {
		if c.Validate() == nil {
			valid = append(valid, c)
		}
	}
	return valid
}
