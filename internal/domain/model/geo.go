package model

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// LatLng 緯度経度を表す基本的な型（WGS84、10進度）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ToPoint orb.Point（経度, 緯度の順）に変換
func (l LatLng) ToPoint() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// Validate NaN・無限大・範囲外の座標を検出する
func (l LatLng) Validate() error {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return fmt.Errorf("座標が数値ではありません (%v, %v): %w", l.Lat, l.Lng, ErrInvalidGeometry)
	}
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("緯度は-90から90の範囲である必要があります (%v): %w", l.Lat, ErrInvalidGeometry)
	}
	if l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("経度は-180から180の範囲である必要があります (%v): %w", l.Lng, ErrInvalidGeometry)
	}
	return nil
}

// ToRing 座標列を閉じた orb.Ring に変換（最初と最後が異なる場合は閉じる）
func ToRing(coords []LatLng) orb.Ring {
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, c.ToPoint())
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// OpenVertices 閉じるための重複頂点を除いた頂点列を返す
func OpenVertices(coords []LatLng) []LatLng {
	if len(coords) > 1 && coords[0] == coords[len(coords)-1] {
		return coords[:len(coords)-1]
	}
	return coords
}

// DistinctVertexCount 重複を除いた頂点数
func DistinctVertexCount(coords []LatLng) int {
	seen := make(map[LatLng]struct{}, len(coords))
	for _, c := range coords {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Viewport 地図表示範囲（ビジョンモデルに渡した画像の地理的範囲）
type Viewport struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Validate 表示範囲の座標チェック
func (v Viewport) Validate() error {
	corners := []LatLng{{Lat: v.South, Lng: v.West}, {Lat: v.North, Lng: v.East}}
	for _, c := range corners {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Ring 表示範囲の矩形（南西から反時計回り、閉じたリング）
func (v Viewport) Ring() []LatLng {
	return []LatLng{
		{Lat: v.South, Lng: v.West},
		{Lat: v.South, Lng: v.East},
		{Lat: v.North, Lng: v.East},
		{Lat: v.North, Lng: v.West},
		{Lat: v.South, Lng: v.West},
	}
}
