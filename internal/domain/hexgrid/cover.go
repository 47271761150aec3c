package hexgrid

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/uber/h3-go/v4"

	"LandPlan-App/internal/domain/model"
)

// MaxCoverCells 1回のポリゴン被覆で返すセル数の上限
const MaxCoverCells = 1 << 20

// minRingAreaDeg2 これ未満の面積（度²、符号なし）は面積ゼロとみなす
const minRingAreaDeg2 = 1e-14

const metersPerDegree = 111195.08

// Cover ポリゴンと一部でも重なるセルを昇順で返す
//
// 頂点が3未満、面積ゼロ、自己交差のリングは空の結果（エラーではない）。
// 頂点の並び順（時計回り・反時計回り）は結果に影響しない。
// NaN・範囲外の座標、不正な解像度は model.ErrInvalidGeometry。
// セル数が MaxCoverCells を超える見込みなら model.ErrInvalidParameter。
func Cover(ring []model.LatLng, res int) ([]model.CellID, error) {
	if model.DistinctVertexCount(ring) < 3 {
		return []model.CellID{}, nil
	}
	for _, p := range ring {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if !ValidResolution(res) {
		return nil, fmt.Errorf("解像度 %d は範囲外です: %w", res, model.ErrInvalidGeometry)
	}

	planarRing := toPlanarRing(ring)
	if math.Abs(planar.Area(planarRing)) < minRingAreaDeg2 || !isSimple(planarRing) {
		return []model.CellID{}, nil
	}

	if estimate := estimateCells(planarRing.Bound(), res); estimate > MaxCoverCells {
		return nil, fmt.Errorf("解像度 %d ではセル数が多すぎます (推定 %.0f, 上限 %d): %w", res, estimate, MaxCoverCells, model.ErrInvalidParameter)
	}

	loop := make(h3.GeoLoop, 0, len(planarRing)-1)
	for _, p := range planarRing[:len(planarRing)-1] {
		loop = append(loop, h3.NewLatLng(p.Lat(), p.Lon()))
	}
	found, err := h3.PolygonToCellsExperimental(h3.GeoPolygon{GeoLoop: loop}, res, h3.ContainmentOverlapping)
	if err != nil {
		return nil, fmt.Errorf("ポリゴンのセル被覆に失敗: %v: %w", err, model.ErrInvalidGeometry)
	}

	seen := make(map[model.CellID]struct{}, len(found))
	cells := make([]model.CellID, 0, len(found))
	for _, c := range found {
		if c == 0 {
			continue
		}
		id := fromCell(c)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cells = append(cells, id)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })
	return cells, nil
}

// toPlanarRing 経度緯度の平面リング（連続する重複頂点を除き、閉じる）
func toPlanarRing(ring []model.LatLng) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		pt := p.ToPoint()
		if n := len(out); n > 0 && out[n-1].Equal(pt) {
			continue
		}
		out = append(out, pt)
	}
	if !out.Closed() {
		out = append(out, out[0])
	}
	return out
}

// estimateCells 外接矩形（2辺長分の余白を含む）に収まるセル数の見積もり
func estimateCells(bound orb.Bound, res int) float64 {
	margin := 4 * EdgeLengthM(res)
	midLat := (bound.Min.Lat() + bound.Max.Lat()) / 2
	width := (bound.Max.Lon()-bound.Min.Lon())*metersPerDegree*math.Cos(midLat*math.Pi/180) + margin
	height := (bound.Max.Lat()-bound.Min.Lat())*metersPerDegree + margin
	return width * height / CellAreaM2(res)
}

// isSimple 隣接しない辺同士が交差しないか
func isSimple(ring orb.Ring) bool {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a.X(), b.X()) <= p.X() && p.X() <= math.Max(a.X(), b.X()) &&
		math.Min(a.Y(), b.Y()) <= p.Y() && p.Y() <= math.Max(a.Y(), b.Y())
}
