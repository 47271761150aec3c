package repository

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
)

// MemoryGridRepository コピーオンライトのインメモリセルストア
// 書き込みはミューテックス下で複製してからポインタを差し替える
type MemoryGridRepository struct {
	mu      sync.Mutex
	current atomic.Pointer[model.Grid]
}

// NewMemoryGridRepository 空のグリッドを持つストアを作成
func NewMemoryGridRepository() repository.GridRepository {
	r := &MemoryGridRepository{}
	r.current.Store(emptyGrid())
	return r
}

func emptyGrid() *model.Grid {
	return &model.Grid{Cells: map[model.CellID]model.CellRecord{}}
}

// ReplaceGrid グリッド全体を置き換える
func (r *MemoryGridRepository) ReplaceGrid(grid *model.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if grid == nil {
		r.current.Store(emptyGrid())
		return
	}
	// 呼び出し元が渡したマップを後から書き換えても影響しないよう複製する
	r.current.Store(grid.Clone())
}

// SetCell 単一セルをマージ更新する
func (r *MemoryGridRepository) SetCell(id model.CellID, patch model.CellPatch) (*model.Grid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current.Load()
	rec, ok := current.Cells[id]
	if !ok {
		return current, fmt.Errorf("セル %s はグリッドに存在しません: %w", id, model.ErrCellNotFound)
	}

	next := current.Clone()
	next.Cells[id] = patch.Apply(rec)
	r.current.Store(next)
	return next, nil
}

// SetCells 複数セルをマージ更新する。存在しないIDは読み飛ばし、入力順に返す
func (r *MemoryGridRepository) SetCells(updates []model.CellUpdate) (*model.Grid, []model.CellID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	skipped := make([]model.CellID, 0)
	current := r.current.Load()
	if len(updates) == 0 {
		return current, skipped
	}

	next := current.Clone()
	for _, u := range updates {
		rec, ok := next.Cells[u.ID]
		if !ok {
			skipped = append(skipped, u.ID)
			continue
		}
		next.Cells[u.ID] = u.Patch.Apply(rec)
	}
	r.current.Store(next)
	return next, skipped
}

// CellsByTerrain 指定した地表分類のセルをID昇順で返す
func (r *MemoryGridRepository) CellsByTerrain(tag model.TerrainTag) []model.CellRecord {
	grid := r.current.Load()

	records := make([]model.CellRecord, 0)
	for _, rec := range grid.Cells {
		if rec.Terrain == tag {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// Statistics 現在のグリッドの集計値
func (r *MemoryGridRepository) Statistics() model.GridStatistics {
	return r.current.Load().Statistics()
}

// Snapshot 現在のグリッド（不変として扱うこと）
func (r *MemoryGridRepository) Snapshot() *model.Grid {
	return r.current.Load()
}

// Reset グリッドを空にする
func (r *MemoryGridRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Store(emptyGrid())
}
