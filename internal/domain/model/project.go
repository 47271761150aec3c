package model

import "time"

// Project 計画対象の土地1件
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Resolution int       `json:"resolution"`
	TotalAcres float64   `json:"total_acres"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateProjectRequest プロジェクト作成リクエスト
type CreateProjectRequest struct {
	Name       string   `json:"name"`
	Boundary   []LatLng `json:"boundary" binding:"required"`
	Resolution *int     `json:"resolution,omitempty"` // 省略時は既定の基本解像度
}

// ProjectResponse プロジェクトの概要と集計値
type ProjectResponse struct {
	Project     Project        `json:"project"`
	BoundaryWKT string         `json:"boundary_wkt,omitempty"` // 境界ポリゴン（WKT, 経度緯度順）
	Statistics  GridStatistics `json:"statistics"`
}

// BatchCellUpdateRequest 複数セルの手動編集
type BatchCellUpdateRequest struct {
	Updates []CellUpdate `json:"updates" binding:"required"`
}

// BatchCellUpdateResponse 複数セルの手動編集結果
type BatchCellUpdateResponse struct {
	Applied    int            `json:"applied"`
	Skipped    []CellID       `json:"skipped"` // グリッドに存在しないID
	Statistics GridStatistics `json:"statistics"`
}

// DetectionRequest ビジョンモデルの検出結果の反映リクエスト
// Raw（モデル出力テキスト）か Detections のどちらかを指定する
type DetectionRequest struct {
	Viewport   Viewport    `json:"viewport"`
	Raw        string      `json:"raw,omitempty"`
	Detections []Detection `json:"detections,omitempty"`
	Resolution *int        `json:"resolution,omitempty"` // 被覆計算の解像度（省略時はグリッドの解像度）
}

// DetectionResponse 検出結果の反映結果
type DetectionResponse struct {
	Results      []DetectionResult `json:"results"`
	UpdatedCells int               `json:"updated_cells"`
	Statistics   GridStatistics    `json:"statistics"`
}

// EnrichRequest 標高解析リクエスト
type EnrichRequest struct {
	PrevailingWind string `json:"prevailing_wind,omitempty"` // 省略時は設定値
}

// FeatureAnalysisRequest 地物の空間解析リクエスト
type FeatureAnalysisRequest struct {
	Features       []Feature `json:"features" binding:"required"`
	PrevailingWind string    `json:"prevailing_wind,omitempty"`
}

// FeatureAnalysisResponse 地物毎の空間メトリクス（リクエストと同じ順序）
type FeatureAnalysisResponse struct {
	Features []Feature        `json:"features"`
	Metrics  []SpatialMetrics `json:"metrics"`
}
