package service

import (
	"LandPlan-App/internal/domain/hexgrid"
	"LandPlan-App/internal/domain/model"
)

// HexIndex ポリゴンと六角形セルの相互変換
type HexIndex interface {
	// CellsCoveringPolygon ポリゴンと一部でも重なるセル（ID昇順、決定的）
	CellsCoveringPolygon(polygon []model.LatLng, resolution int) ([]model.CellID, error)
	// CellCenter セル中心の座標
	CellCenter(id model.CellID) (model.LatLng, error)
	// CellBoundary セル境界（閉じたリング）
	CellBoundary(id model.CellID) ([]model.LatLng, error)
	// CellNeighbors 隣接セル
	CellNeighbors(id model.CellID) ([]model.CellID, error)
	// CellParent セル中心を含む粗い解像度のセル
	CellParent(id model.CellID, resolution int) (model.CellID, error)
}

type hexIndexService struct{}

// NewHexIndexService は新しいHexIndexインスタンスを作成
func NewHexIndexService() HexIndex {
	return &hexIndexService{}
}

func (s *hexIndexService) CellsCoveringPolygon(polygon []model.LatLng, resolution int) ([]model.CellID, error) {
	return hexgrid.Cover(polygon, resolution)
}

func (s *hexIndexService) CellCenter(id model.CellID) (model.LatLng, error) {
	return hexgrid.Center(id)
}

func (s *hexIndexService) CellBoundary(id model.CellID) ([]model.LatLng, error) {
	return hexgrid.Boundary(id)
}

func (s *hexIndexService) CellNeighbors(id model.CellID) ([]model.CellID, error) {
	return hexgrid.Neighbors(id)
}

func (s *hexIndexService) CellParent(id model.CellID, resolution int) (model.CellID, error) {
	return hexgrid.Parent(id, resolution)
}
