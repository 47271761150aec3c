package repository

import (
	"LandPlan-App/internal/domain/model"
)

// GridRepository プロジェクト1件分のセルストア
// 公開されたグリッドは不変で、読み出し側が置換途中の状態を見ることはない
type GridRepository interface {
	// ReplaceGrid グリッド全体を置き換える（プロジェクト読み込み・生成時）
	ReplaceGrid(grid *model.Grid)
	// SetCell 単一セルをマージ更新する。存在しないIDは ErrCellNotFound と未変更のグリッドを返す
	SetCell(id model.CellID, patch model.CellPatch) (*model.Grid, error)
	// SetCells 複数セルをマージ更新する。存在しないIDは読み飛ばし、そのIDを返す
	SetCells(updates []model.CellUpdate) (*model.Grid, []model.CellID)
	// CellsByTerrain 指定した地表分類のセル（ID昇順）
	CellsByTerrain(tag model.TerrainTag) []model.CellRecord
	// Statistics 集計値（読み取り専用）
	Statistics() model.GridStatistics
	// Snapshot 現在のグリッド
	Snapshot() *model.Grid
	// Reset グリッドを空にする（プロジェクトリセット）
	Reset()
}
