package helper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"LandPlan-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// HaversineDistance は2地点間の距離を計算する (km)
func HaversineDistance(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PerimeterFeet は頂点列の周長をフィートで返す（closedなら最後の辺も含む）
func PerimeterFeet(coords []model.LatLng, closed bool) float64 {
	pts := model.OpenVertices(coords)
	if len(pts) < 2 {
		return 0
	}
	var km float64
	for i := 0; i+1 < len(pts); i++ {
		km += HaversineDistance(pts[i], pts[i+1])
	}
	if closed && len(pts) > 2 {
		km += HaversineDistance(pts[len(pts)-1], pts[0])
	}
	return km * 1000 * model.FeetPerMeter
}

// PolygonAcres はポリゴンの面積をエーカーで返す（頂点が3未満なら0）
func PolygonAcres(coords []model.LatLng) float64 {
	if model.DistinctVertexCount(coords) < 3 {
		return 0
	}
	ring := model.ToRing(coords)
	return geo.Area(orb.Polygon{ring}) / model.SquareMetersPerAcre
}

// CoordinateCentroid は頂点の単純平均を返す（閉じるための重複頂点は除く）
func CoordinateCentroid(coords []model.LatLng) (model.LatLng, bool) {
	pts := model.OpenVertices(coords)
	if len(pts) == 0 {
		return model.LatLng{}, false
	}
	var sumLat, sumLng float64
	for _, p := range pts {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(pts))
	return model.LatLng{Lat: sumLat / n, Lng: sumLng / n}, true
}

// PlanarBearing は座標差分の atan2 による方位角（度、北=0、時計回り）
// 等距円筒近似のため、大円方位とはセクター境界付近でずれる
func PlanarBearing(from, to model.LatLng) float64 {
	deg := math.Atan2(to.Lng-from.Lng, to.Lat-from.Lat) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// LongestEdge は最も長い辺の始点と終点を返す（closedなら閉じる辺も候補）
func LongestEdge(coords []model.LatLng, closed bool) (model.LatLng, model.LatLng, bool) {
	pts := model.OpenVertices(coords)
	if len(pts) < 2 {
		return model.LatLng{}, model.LatLng{}, false
	}
	edges := len(pts) - 1
	if closed && len(pts) > 2 {
		edges = len(pts)
	}

	var from, to model.LatLng
	longest := -1.0
	for i := 0; i < edges; i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		d := math.Hypot(b.Lat-a.Lat, b.Lng-a.Lng)
		if d > longest {
			longest = d
			from, to = a, b
		}
	}
	if longest <= 0 {
		return model.LatLng{}, model.LatLng{}, false
	}
	return from, to, true
}

// DegreeDistanceFeet は度単位のユークリッド距離を概算フィートに換算する
func DegreeDistanceFeet(a, b model.LatLng) float64 {
	return math.Hypot(b.Lat-a.Lat, b.Lng-a.Lng) * model.FeetPerDegree
}

// AngularDifference は2つの方位角の差（0..180度）
func AngularDifference(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// BoundsOf は座標列の外接矩形
func BoundsOf(coords []model.LatLng) orb.Bound {
	if len(coords) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: coords[0].ToPoint(), Max: coords[0].ToPoint()}
	for _, c := range coords[1:] {
		b = b.Extend(c.ToPoint())
	}
	return b
}
