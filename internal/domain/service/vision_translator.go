package service

import (
	"fmt"

	"LandPlan-App/internal/domain/model"
)

// VisionTranslator ビジョンモデルの検出ボックスをセル集合に変換する
type VisionTranslator struct {
	hexIndex HexIndex
}

// NewVisionTranslator は新しいVisionTranslatorインスタンスを作成
func NewVisionTranslator(hexIndex HexIndex) *VisionTranslator {
	return &VisionTranslator{hexIndex: hexIndex}
}

// BoxToCells は [yMin, xMin, yMax, xMax]（0..1000 正規化画像座標）を表示範囲に当てはめ、
// 覆うセルを返す。幅か高さがゼロのボックスは空集合。
func (v *VisionTranslator) BoxToCells(box [4]int, viewport model.Viewport, resolution int) ([]model.CellID, error) {
	ring, err := BoxToRing(box, viewport)
	if err != nil {
		return nil, err
	}
	if ring == nil {
		return []model.CellID{}, nil
	}
	return v.hexIndex.CellsCoveringPolygon(ring, resolution)
}

// BoxToRing は検出ボックスの地理的な4隅（閉じたリング）。退化したボックスは nil
func BoxToRing(box [4]int, viewport model.Viewport) ([]model.LatLng, error) {
	for _, v := range box {
		if v < 0 || float64(v) > model.VisionBoxScale {
			return nil, fmt.Errorf("ボックス座標 %v は0から1000の範囲である必要があります: %w", box, model.ErrInvalidGeometry)
		}
	}
	if err := viewport.Validate(); err != nil {
		return nil, err
	}

	yMin, xMin, yMax, xMax := box[0], box[1], box[2], box[3]
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	if yMin == yMax || xMin == xMax {
		return nil, nil
	}

	south := scaleBox(viewport.South, viewport.North, yMin)
	north := scaleBox(viewport.South, viewport.North, yMax)
	west := scaleBox(viewport.West, viewport.East, xMin)
	east := scaleBox(viewport.West, viewport.East, xMax)

	return model.Viewport{North: north, South: south, East: east, West: west}.Ring(), nil
}

// scaleBox は lo + v/1000·(hi - lo)。端点は丸め誤差なしで lo / hi を返す
func scaleBox(lo, hi float64, v int) float64 {
	switch float64(v) {
	case 0:
		return lo
	case model.VisionBoxScale:
		return hi
	}
	return lo + float64(v)/model.VisionBoxScale*(hi-lo)
}
