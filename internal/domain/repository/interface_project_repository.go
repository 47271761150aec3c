package repository

import "LandPlan-App/internal/domain/model"

// ProjectRepository プロジェクトとそのセルストアの登録簿
type ProjectRepository interface {
	// Create プロジェクトを登録し、初期グリッドを持つセルストアを返す
	Create(project model.Project, grid *model.Grid) GridRepository
	// Get プロジェクトとセルストア。未登録なら ErrProjectNotFound
	Get(id string) (model.Project, GridRepository, error)
	// List 登録済みプロジェクト（作成日時順）
	List() []model.Project
	// Delete セルストアをリセットして登録を削除する
	Delete(id string) error
}
