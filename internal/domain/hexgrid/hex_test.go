package hexgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandPlan-App/internal/domain/helper"
	"LandPlan-App/internal/domain/model"
)

// 約1km四方（ミズーリ州の農地付近）
func squareKm() []model.LatLng {
	return []model.LatLng{
		{Lat: 38.5000, Lng: -92.5000},
		{Lat: 38.5000, Lng: -92.4885},
		{Lat: 38.5090, Lng: -92.4885},
		{Lat: 38.5090, Lng: -92.5000},
		{Lat: 38.5000, Lng: -92.5000},
	}
}

func reversed(ring []model.LatLng) []model.LatLng {
	out := make([]model.LatLng, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func TestFromLatLngCenterRoundTrip(t *testing.T) {
	p := model.LatLng{Lat: 38.5045, Lng: -92.4940}
	for res := 6; res <= 13; res++ {
		id, err := FromLatLng(p, res)
		require.NoError(t, err)
		assert.True(t, Valid(id))
		assert.Equal(t, res, Resolution(id))

		center, err := Center(id)
		require.NoError(t, err)

		again, err := FromLatLng(center, res)
		require.NoError(t, err)
		assert.Equal(t, id, again, "res %d", res)
	}

	_, err := FromLatLng(p, 16)
	assert.ErrorIs(t, err, model.ErrInvalidGeometry)
	_, err = FromLatLng(model.LatLng{Lat: 91, Lng: 0}, 10)
	assert.ErrorIs(t, err, model.ErrInvalidGeometry)
}

func TestInvalidCellID(t *testing.T) {
	for _, id := range []model.CellID{0, 1, model.CellID(1 << 63)} {
		assert.False(t, Valid(id))
		assert.Equal(t, -1, Resolution(id))

		_, err := Center(id)
		assert.ErrorIs(t, err, model.ErrInvalidCellID)
		_, err = Boundary(id)
		assert.ErrorIs(t, err, model.ErrInvalidCellID)
		_, err = Neighbors(id)
		assert.ErrorIs(t, err, model.ErrInvalidCellID)
		_, err = Parent(id, 5)
		assert.ErrorIs(t, err, model.ErrInvalidCellID)
	}
}

func TestBoundaryIsClosedHexagon(t *testing.T) {
	id := mustCell(t, model.LatLng{Lat: 38.5, Lng: -92.5}, 10)

	ring, err := Boundary(id)
	require.NoError(t, err)
	require.Len(t, ring, 7)
	assert.Equal(t, ring[0], ring[6])

	center, err := Center(id)
	require.NoError(t, err)
	for _, p := range ring[:6] {
		// 頂点は中心から平均辺長程度離れている
		assert.InEpsilon(t, EdgeLengthM(10), 1000*helper.HaversineDistance(center, p), 0.35)
	}
}

func TestNeighborsAreEquidistantOnTheGround(t *testing.T) {
	for _, p := range []model.LatLng{
		{Lat: 38.5, Lng: 0},
		{Lat: 38.5, Lng: -92.5},
		{Lat: 38.5, Lng: -120},
		{Lat: 61.2, Lng: -149.9},
	} {
		id := mustCell(t, p, 10)
		center, err := Center(id)
		require.NoError(t, err)

		neighbors, err := Neighbors(id)
		require.NoError(t, err)
		require.Len(t, neighbors, 6)

		var minDist, maxDist float64 = math.Inf(1), 0
		for _, n := range neighbors {
			assert.NotEqual(t, id, n)
			c, err := Center(n)
			require.NoError(t, err)
			d := 1000 * helper.HaversineDistance(center, c)
			minDist = math.Min(minDist, d)
			maxDist = math.Max(maxDist, d)
		}
		// 中心間距離は √3·辺長 程度で、ほぼ等しい
		assert.InEpsilon(t, math.Sqrt(3)*EdgeLengthM(10), (minDist+maxDist)/2, 0.35, "%v", p)
		assert.Less(t, maxDist/minDist, 1.15, "%v", p)
	}
}

func TestParent(t *testing.T) {
	p := model.LatLng{Lat: 38.5045, Lng: -92.4940}
	child := mustCell(t, p, 12)

	parent, err := Parent(child, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, Resolution(parent))
	assert.Equal(t, mustCell(t, p, 9), parent)

	same, err := Parent(child, 12)
	require.NoError(t, err)
	assert.Equal(t, child, same)

	_, err = Parent(child, 13)
	assert.ErrorIs(t, err, model.ErrInvalidCellID)
	_, err = Parent(child, -1)
	assert.ErrorIs(t, err, model.ErrInvalidCellID)
}

func TestCoverDeterministic(t *testing.T) {
	first, err := Cover(squareKm(), 10)
	require.NoError(t, err)
	second, err := Cover(squareKm(), 10)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.IsIncreasing(t, first)
}

func TestCoverIgnoresWindingOrder(t *testing.T) {
	ccw, err := Cover(squareKm(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, ccw)

	cw, err := Cover(reversed(squareKm()), 10)
	require.NoError(t, err)
	assert.Equal(t, ccw, cw)

	// 閉じていない時計回りのリング
	open := reversed(squareKm())[:4]
	cwOpen, err := Cover(open, 10)
	require.NoError(t, err)
	assert.Equal(t, ccw, cwOpen)
}

func TestCoverSquareKilometer(t *testing.T) {
	// 1km²・解像度10: 内側に約66セル、境界にかかるセルを加えてもその2倍未満
	cells, err := Cover(squareKm(), 10)
	require.NoError(t, err)

	interior := 1.0e6 / CellAreaM2(10)
	assert.Greater(t, float64(len(cells)), interior)
	assert.Less(t, float64(len(cells)), 2*interior)

	// 頂点を含むセルは必ず被覆に含まれる
	for _, corner := range squareKm()[:4] {
		assert.Contains(t, cells, mustCell(t, corner, 10))
	}
	for _, id := range cells {
		assert.Equal(t, 10, Resolution(id))
	}
}

func TestCoverTinyPolygonInsideOneCell(t *testing.T) {
	center, err := Center(mustCell(t, model.LatLng{Lat: 38.5, Lng: -92.5}, 8))
	require.NoError(t, err)

	d := 0.00001
	tiny := []model.LatLng{
		{Lat: center.Lat - d, Lng: center.Lng - d},
		{Lat: center.Lat - d, Lng: center.Lng + d},
		{Lat: center.Lat + d, Lng: center.Lng + d},
	}
	cells, err := Cover(tiny, 8)
	require.NoError(t, err)
	assert.Equal(t, []model.CellID{mustCell(t, center, 8)}, cells)
}

func TestCoverDegenerateInputs(t *testing.T) {
	t.Run("頂点が3未満", func(t *testing.T) {
		cells, err := Cover([]model.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}, 10)
		assert.NoError(t, err)
		assert.Empty(t, cells)
	})

	t.Run("閉じた2点", func(t *testing.T) {
		cells, err := Cover([]model.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 1, Lng: 1}}, 10)
		assert.NoError(t, err)
		assert.Empty(t, cells)
	})

	t.Run("面積ゼロ", func(t *testing.T) {
		line := []model.LatLng{{Lat: 38.50, Lng: -92.50}, {Lat: 38.51, Lng: -92.50}, {Lat: 38.52, Lng: -92.50}}
		cells, err := Cover(line, 10)
		assert.NoError(t, err)
		assert.Empty(t, cells)
	})

	t.Run("自己交差（蝶ネクタイ）", func(t *testing.T) {
		bowtie := []model.LatLng{
			{Lat: 38.50, Lng: -92.50},
			{Lat: 38.51, Lng: -92.49},
			{Lat: 38.51, Lng: -92.50},
			{Lat: 38.50, Lng: -92.49},
		}
		cells, err := Cover(bowtie, 10)
		assert.NoError(t, err)
		assert.Empty(t, cells)
	})
}

func TestCoverInvalidGeometry(t *testing.T) {
	bad := [][]model.LatLng{
		{{Lat: math.NaN(), Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}},
		{{Lat: 91, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}},
		{{Lat: 0, Lng: -181}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}},
	}
	for _, ring := range bad {
		cells, err := Cover(ring, 10)
		assert.ErrorIs(t, err, model.ErrInvalidGeometry)
		assert.Nil(t, cells)
	}

	_, err := Cover(squareKm(), 99)
	assert.ErrorIs(t, err, model.ErrInvalidGeometry)
}

func TestCoverTooManyCells(t *testing.T) {
	// 約1万エーカーの有効な境界でも、細かい解像度ではセル数の上限を超える
	large := []model.LatLng{
		{Lat: 38.50, Lng: -92.50},
		{Lat: 38.50, Lng: -92.42},
		{Lat: 38.57, Lng: -92.42},
		{Lat: 38.57, Lng: -92.50},
	}
	cells, err := Cover(large, 14)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	assert.NotErrorIs(t, err, model.ErrInvalidGeometry)
	assert.Nil(t, cells)

	cells, err = Cover(large, 9)
	require.NoError(t, err)
	assert.NotEmpty(t, cells)
}

func mustCell(t *testing.T, p model.LatLng, res int) model.CellID {
	t.Helper()
	id, err := FromLatLng(p, res)
	require.NoError(t, err)
	return id
}
