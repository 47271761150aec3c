// Package hexgrid provides the hierarchical hexagonal tessellation of the globe.
// Cells are H3 cells (icosahedral aperture-7 grid), so a cell ID names the same
// ground at every call and cells stay locally regular at any longitude.
package hexgrid

import (
	"fmt"

	"github.com/uber/h3-go/v4"

	"LandPlan-App/internal/domain/model"
)

const (
	MinResolution = 0
	MaxResolution = 15
)

// avgEdgeLengthM 解像度毎の平均辺長（m）
var avgEdgeLengthM = [MaxResolution + 1]float64{
	1281256.011, 483056.8391, 182512.9565, 68979.22179,
	26071.75968, 9854.090990, 3724.532667, 1406.475763,
	531.4140101, 200.7861476, 75.86378287, 28.66389748,
	10.83018784, 4.092010473, 1.546099657, 0.584168630,
}

// avgHexAreaM2 解像度毎の平均セル面積（m²）
var avgHexAreaM2 = [MaxResolution + 1]float64{
	4357449416078.392, 609788441794.134, 86801780398.997, 12393434655.088,
	1770347654.491, 252903858.182, 36129062.164, 5161293.360,
	737327.598, 105332.513, 15047.502, 2149.643,
	307.092, 43.870, 6.267, 0.895,
}

// ValidResolution 解像度が範囲内かどうか
func ValidResolution(res int) bool {
	return res >= MinResolution && res <= MaxResolution
}

// EdgeLengthM 解像度毎の平均辺長（m）。範囲外は 0
func EdgeLengthM(res int) float64 {
	if !ValidResolution(res) {
		return 0
	}
	return avgEdgeLengthM[res]
}

// CellAreaM2 解像度毎の平均セル面積（m²）。範囲外は 0
func CellAreaM2(res int) float64 {
	if !ValidResolution(res) {
		return 0
	}
	return avgHexAreaM2[res]
}

func toCell(id model.CellID) (h3.Cell, error) {
	cell := h3.Cell(int64(id))
	if !cell.IsValid() {
		return 0, fmt.Errorf("セルID %s は有効なセルではありません: %w", id, model.ErrInvalidCellID)
	}
	return cell, nil
}

func fromCell(cell h3.Cell) model.CellID {
	return model.CellID(uint64(cell))
}

func toLatLng(p model.LatLng) h3.LatLng {
	return h3.NewLatLng(p.Lat, p.Lng)
}

func fromLatLng(p h3.LatLng) model.LatLng {
	return model.LatLng{Lat: p.Lat, Lng: p.Lng}
}

// Valid セルIDが有効なセルを指すか
func Valid(id model.CellID) bool {
	_, err := toCell(id)
	return err == nil
}

// Resolution セルIDの解像度（不正なIDは -1）
func Resolution(id model.CellID) int {
	cell, err := toCell(id)
	if err != nil {
		return -1
	}
	return cell.Resolution()
}

// FromLatLng 地点を含むセルのID
func FromLatLng(p model.LatLng, res int) (model.CellID, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !ValidResolution(res) {
		return 0, fmt.Errorf("解像度 %d は範囲外です: %w", res, model.ErrInvalidGeometry)
	}
	cell, err := h3.LatLngToCell(toLatLng(p), res)
	if err != nil {
		return 0, fmt.Errorf("地点 (%f, %f) のセル変換失敗: %w", p.Lat, p.Lng, model.ErrInvalidGeometry)
	}
	return fromCell(cell), nil
}

// Center セル中心の座標
func Center(id model.CellID) (model.LatLng, error) {
	cell, err := toCell(id)
	if err != nil {
		return model.LatLng{}, err
	}
	center, err := h3.CellToLatLng(cell)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("セル %s の中心取得失敗: %w", id, model.ErrInvalidCellID)
	}
	return fromLatLng(center), nil
}

// Boundary セル境界（閉じたリング。六角形は7点、五角形は6点）
func Boundary(id model.CellID) ([]model.LatLng, error) {
	cell, err := toCell(id)
	if err != nil {
		return nil, err
	}
	boundary, err := h3.CellToBoundary(cell)
	if err != nil {
		return nil, fmt.Errorf("セル %s の境界取得失敗: %w", id, model.ErrInvalidCellID)
	}
	ring := make([]model.LatLng, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, fromLatLng(p))
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// Neighbors 隣接するセル（六角形は6、五角形は5）
func Neighbors(id model.CellID) ([]model.CellID, error) {
	cell, err := toCell(id)
	if err != nil {
		return nil, err
	}
	disk, err := h3.GridDisk(cell, 1)
	if err != nil {
		return nil, fmt.Errorf("セル %s の近傍取得失敗: %w", id, model.ErrInvalidCellID)
	}
	result := make([]model.CellID, 0, len(disk))
	for _, n := range disk {
		if n == cell || n == 0 {
			continue
		}
		result = append(result, fromCell(n))
	}
	return result, nil
}

// Parent 粗い解像度の親セル
func Parent(id model.CellID, res int) (model.CellID, error) {
	cell, err := toCell(id)
	if err != nil {
		return 0, err
	}
	childRes := cell.Resolution()
	if res > childRes || !ValidResolution(res) {
		return 0, fmt.Errorf("親の解像度 %d は子の解像度 %d 以下である必要があります: %w", res, childRes, model.ErrInvalidCellID)
	}
	if res == childRes {
		return id, nil
	}
	parent, err := cell.Parent(res)
	if err != nil {
		return 0, fmt.Errorf("セル %s の親取得失敗: %w", id, model.ErrInvalidCellID)
	}
	return fromCell(parent), nil
}
