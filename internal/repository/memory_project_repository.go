package repository

import (
	"fmt"
	"sort"
	"sync"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
)

type projectEntry struct {
	project model.Project
	grid    repository.GridRepository
}

// MemoryProjectRepository プロジェクト毎に独立したセルストアを持つインメモリ登録簿
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*projectEntry
}

// NewMemoryProjectRepository 空の登録簿を作成
func NewMemoryProjectRepository() repository.ProjectRepository {
	return &MemoryProjectRepository{projects: make(map[string]*projectEntry)}
}

// Create プロジェクトを登録する。同じIDは置き換える
func (r *MemoryProjectRepository) Create(project model.Project, grid *model.Grid) repository.GridRepository {
	store := NewMemoryGridRepository()
	store.ReplaceGrid(grid)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = &projectEntry{project: project, grid: store}
	return store
}

// Get プロジェクトとセルストアを返す
func (r *MemoryProjectRepository) Get(id string) (model.Project, repository.GridRepository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.projects[id]
	if !ok {
		return model.Project{}, nil, fmt.Errorf("プロジェクト %s が見つかりません: %w", id, model.ErrProjectNotFound)
	}
	return entry.project, entry.grid, nil
}

// List 登録済みプロジェクトを作成日時順（同時刻はID順）で返す
func (r *MemoryProjectRepository) List() []model.Project {
	r.mu.RLock()
	projects := make([]model.Project, 0, len(r.projects))
	for _, entry := range r.projects {
		projects = append(projects, entry.project)
	}
	r.mu.RUnlock()

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects
}

// Delete セルストアをリセットして登録を削除する
func (r *MemoryProjectRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("プロジェクト %s が見つかりません: %w", id, model.ErrProjectNotFound)
	}
	entry.grid.Reset()
	delete(r.projects, id)
	return nil
}
