package model

// CellAnalysis 標高データから導いたセル毎の地形・生息地指標
// グリッドには書き込まず、表示・レポート用に返す
type CellAnalysis struct {
	ID                 CellID   `json:"id"`
	Elevation          float64  `json:"elevation"`
	NeighborhoodMean   float64  `json:"neighborhood_mean"`
	NeighborhoodStdDev float64  `json:"neighborhood_std_dev"`
	TPI                float64  `json:"tpi"`
	Landform           Landform `json:"landform"`
	SlopePercent       float64  `json:"slope_percent"`
	SlopeDegrees       float64  `json:"slope_degrees"`
	Aspect             Compass  `json:"aspect,omitempty"` // 下り斜面の向き（平坦なら空）
	ThermalTunnel      bool     `json:"thermal_tunnel"`
	BeddingScore       int      `json:"bedding_score"`
	MovementCost       int      `json:"movement_cost"`
	Permeability       float64  `json:"permeability"`
}

// EnrichmentResult グリッド全体の標高解析結果
type EnrichmentResult struct {
	MaxRidgeElevation float64        `json:"max_ridge_elevation"`
	Analyses          []CellAnalysis `json:"analyses"`
	Updates           []CellUpdate   `json:"-"`
}
