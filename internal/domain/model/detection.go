package model

// Detection ビジョンモデルの検出結果（0..1000 正規化画像座標）
type Detection struct {
	Label      string  `json:"label"`
	Box2D      [4]int  `json:"box_2d"` // [yMin, xMin, yMax, xMax]
	Confidence float64 `json:"confidence"`
}

// DetectionResult 検出1件をグリッドに反映した結果
type DetectionResult struct {
	Label     string     `json:"label"`
	Terrain   TerrainTag `json:"terrain"`
	Accepted  bool       `json:"accepted"`
	Reason    string     `json:"reason,omitempty"`
	CellCount int        `json:"cell_count"`
}
