package model

// GeometryType 描画されたジオメトリの種類
type GeometryType string

const (
	GeometryPolygon GeometryType = "polygon"
	GeometryLine    GeometryType = "line"
	GeometryPoint   GeometryType = "point"
)

// Feature ユーザーが描画した地物（グリッドとは独立）
type Feature struct {
	ID          string       `json:"id"`
	Geometry    GeometryType `json:"geometry"`
	Kind        string       `json:"kind"`  // 種類タグ（例: "bedding_area", "stand", "trail"）
	Label       string       `json:"label"` // 自由記述ラベル
	Note        string       `json:"note"`  // 自由記述メモ
	Coordinates []LatLng     `json:"coordinates"`
	AreaAcres   float64      `json:"area_acres,omitempty"` // ポリゴンのみ
}

// ProximityEntry 近接する他の地物
type ProximityEntry struct {
	FeatureID    string  `json:"feature_id"`
	Label        string  `json:"label"`
	DistanceFeet float64 `json:"distance_feet"`
	Direction    Compass `json:"direction"` // この地物から見た方向
}

// SpatialMetrics 地物の空間的な関係を表す表示用メトリクス
type SpatialMetrics struct {
	Label             string           `json:"label"`
	Acreage           float64          `json:"acreage"`
	PerimeterEstimate float64          `json:"perimeter_estimate_feet"`
	Orientation       string           `json:"orientation"`
	RelativePosition  string           `json:"relative_position"`
	Proximity         []ProximityEntry `json:"proximity"`
	WindExposure      string           `json:"wind_exposure"`
	Notes             string           `json:"notes"`
}
