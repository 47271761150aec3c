package model

import "sort"

// CellRecord セル毎の属性
type CellRecord struct {
	ID           CellID     `json:"id"`
	Terrain      TerrainTag `json:"terrain"`
	Elevation    *float64   `json:"elevation,omitempty"`    // 標高（m）
	Permeability *float64   `json:"permeability,omitempty"` // 移動透過性 0..1
	Confidence   *float64   `json:"confidence,omitempty"`   // 検出信頼度 0..1
	UserModified bool       `json:"user_modified"`
}

// CellPatch セルの部分更新。nilのフィールドは既存値を保持する
type CellPatch struct {
	Terrain      *TerrainTag `json:"terrain,omitempty"`
	Elevation    *float64    `json:"elevation,omitempty"`
	Permeability *float64    `json:"permeability,omitempty"`
	Confidence   *float64    `json:"confidence,omitempty"`
	UserModified *bool       `json:"user_modified,omitempty"`
}

// CellUpdate バッチ更新の1要素
type CellUpdate struct {
	ID    CellID    `json:"id"`
	Patch CellPatch `json:"patch"`
}

// Apply パッチをフィールド単位でマージした新しいレコードを返す
func (p CellPatch) Apply(rec CellRecord) CellRecord {
	if p.Terrain != nil {
		rec.Terrain = *p.Terrain
	}
	if p.Elevation != nil {
		rec.Elevation = Float64Ptr(*p.Elevation)
	}
	if p.Permeability != nil {
		rec.Permeability = Float64Ptr(clampUnit(*p.Permeability))
	}
	if p.Confidence != nil {
		rec.Confidence = Float64Ptr(clampUnit(*p.Confidence))
	}
	// 一度trueになったフラグは全置換かリセットでのみ戻る
	if p.UserModified != nil && *p.UserModified {
		rec.UserModified = true
	}
	return rec
}

// Grid プロジェクト1件分のセルストア状態
type Grid struct {
	Boundary   []LatLng              `json:"boundary"`
	Resolution int                   `json:"resolution"`
	TotalAcres float64               `json:"total_acres"`
	Cells      map[CellID]CellRecord `json:"cells"`
}

// NewGrid セルID一覧から未分類セルのみのグリッドを作成
func NewGrid(boundary []LatLng, resolution int, totalAcres float64, ids []CellID) *Grid {
	cells := make(map[CellID]CellRecord, len(ids))
	for _, id := range ids {
		cells[id] = CellRecord{ID: id, Terrain: TerrainUnclassified}
	}
	return &Grid{
		Boundary:   append([]LatLng(nil), boundary...),
		Resolution: resolution,
		TotalAcres: totalAcres,
		Cells:      cells,
	}
}

// Clone 書き込み用のディープコピー
func (g *Grid) Clone() *Grid {
	if g == nil {
		return &Grid{Cells: map[CellID]CellRecord{}}
	}
	cells := make(map[CellID]CellRecord, len(g.Cells))
	for id, rec := range g.Cells {
		cells[id] = rec
	}
	return &Grid{
		Boundary:   append([]LatLng(nil), g.Boundary...),
		Resolution: g.Resolution,
		TotalAcres: g.TotalAcres,
		Cells:      cells,
	}
}

// Statistics 集計値。未設定の透過性は平均計算で0として扱う
func (g *Grid) Statistics() GridStatistics {
	stats := GridStatistics{PerTerrainCounts: make(map[TerrainTag]int)}
	if g == nil {
		return stats
	}
	stats.TotalCells = len(g.Cells)

	var permeabilitySum float64
	for _, rec := range g.Cells {
		tag := rec.Terrain
		if tag == "" {
			tag = TerrainUnclassified
		}
		stats.PerTerrainCounts[tag]++
		if tag != TerrainUnclassified {
			stats.ClassifiedCount++
		}
		if rec.Permeability != nil {
			permeabilitySum += *rec.Permeability
		}
	}
	if stats.TotalCells > 0 {
		stats.AvgPermeability = permeabilitySum / float64(stats.TotalCells)
	}
	return stats
}

// SortedIDs セルIDを昇順で返す
func (g *Grid) SortedIDs() []CellID {
	ids := make([]CellID, 0, len(g.Cells))
	for id := range g.Cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GridStatistics ダッシュボード・レポート用の集計値
type GridStatistics struct {
	TotalCells       int                `json:"total_cells"`
	PerTerrainCounts map[TerrainTag]int `json:"per_terrain_counts"`
	AvgPermeability  float64            `json:"avg_permeability"`
	ClassifiedCount  int                `json:"classified_count"`
}

// Float64Ptr float64のポインタを返す
func Float64Ptr(v float64) *float64 {
	return &v
}

// BoolPtr boolのポインタを返す
func BoolPtr(v bool) *bool {
	return &v
}

// TerrainPtr TerrainTagのポインタを返す
func TerrainPtr(v TerrainTag) *TerrainTag {
	return &v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
