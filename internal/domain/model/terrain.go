package model

import (
	"math"
	"strings"
)

// TerrainTag セルの地表分類（閉じた列挙型）
type TerrainTag string

const (
	TerrainUnclassified TerrainTag = "unclassified"
	TerrainHeavyTimber  TerrainTag = "heavy_timber"
	TerrainScrubBrush   TerrainTag = "scrub_brush"
	TerrainOpenPasture  TerrainTag = "open_pasture"
	TerrainBedding      TerrainTag = "bedding"
	TerrainFoodPlot     TerrainTag = "food_plot"
	TerrainWater        TerrainTag = "water"
)

// AllTerrainTags は全ての地表分類を返す
func AllTerrainTags() []TerrainTag {
	return []TerrainTag{
		TerrainUnclassified,
		TerrainHeavyTimber,
		TerrainScrubBrush,
		TerrainOpenPasture,
		TerrainBedding,
		TerrainFoodPlot,
		TerrainWater,
	}
}

// ParseTerrainTag 文字列から地表分類を取得する。未知の値は (unclassified, false)
func ParseTerrainTag(s string) (TerrainTag, bool) {
	normalized := TerrainTag(strings.ToLower(strings.TrimSpace(s)))
	for _, tag := range AllTerrainTags() {
		if tag == normalized {
			return tag, true
		}
	}
	return TerrainUnclassified, false
}

// detectionLabelMap ビジョンモデルのラベルから地表分類へのマッピング
var detectionLabelMap = map[string]TerrainTag{
	"timber":       TerrainHeavyTimber,
	"heavy timber": TerrainHeavyTimber,
	"forest":       TerrainHeavyTimber,
	"woods":        TerrainHeavyTimber,
	"trees":        TerrainHeavyTimber,
	"brush":        TerrainScrubBrush,
	"scrub":        TerrainScrubBrush,
	"scrub brush":  TerrainScrubBrush,
	"thicket":      TerrainScrubBrush,
	"pasture":      TerrainOpenPasture,
	"field":        TerrainOpenPasture,
	"open field":   TerrainOpenPasture,
	"meadow":       TerrainOpenPasture,
	"bedding":      TerrainBedding,
	"bedding area": TerrainBedding,
	"food plot":    TerrainFoodPlot,
	"crop":         TerrainFoodPlot,
	"water":        TerrainWater,
	"pond":         TerrainWater,
	"creek":        TerrainWater,
	"stream":       TerrainWater,
	"lake":         TerrainWater,
}

// TerrainForLabel 検出ラベルを地表分類に変換する。対応がなければ (unclassified, false)
func TerrainForLabel(label string) (TerrainTag, bool) {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(label, "_", " ")))
	if tag, ok := detectionLabelMap[key]; ok {
		return tag, true
	}
	return ParseTerrainTag(strings.ReplaceAll(key, " ", "_"))
}

// Landform 地形位置指数（TPI）による地形分類
type Landform string

const (
	LandformRidge Landform = "RIDGE"
	LandformDraw  Landform = "DRAW"
	LandformFlat  Landform = "FLAT"
	LandformSlope Landform = "SLOPE"
)

// Compass 8方位
type Compass string

const (
	CompassN  Compass = "N"
	CompassNE Compass = "NE"
	CompassE  Compass = "E"
	CompassSE Compass = "SE"
	CompassS  Compass = "S"
	CompassSW Compass = "SW"
	CompassW  Compass = "W"
	CompassNW Compass = "NW"
)

var compassOrder = [8]Compass{CompassN, CompassNE, CompassE, CompassSE, CompassS, CompassSW, CompassW, CompassNW}

var compassAliases = map[string]Compass{
	"north":     CompassN,
	"northeast": CompassNE,
	"east":      CompassE,
	"southeast": CompassSE,
	"south":     CompassS,
	"southwest": CompassSW,
	"west":      CompassW,
	"northwest": CompassNW,
}

// CompassFromBearing 方位角（度、北=0、時計回り）を45度幅の8方位に丸める
func CompassFromBearing(deg float64) Compass {
	normalized := math.Mod(deg, 360)
	if normalized < 0 {
		normalized += 360
	}
	idx := int(math.Floor((normalized+22.5)/45)) % 8
	return compassOrder[idx]
}

// ParseCompass "NW"・"north-west"・"northwest" などを8方位に変換
func ParseCompass(s string) (Compass, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if c, ok := compassAliases[key]; ok {
		return c, true
	}
	for _, c := range compassOrder {
		if strings.EqualFold(string(c), key) {
			return c, true
		}
	}
	return "", false
}

// Degrees 方位の中心角（北=0、時計回り）
func (c Compass) Degrees() (float64, bool) {
	for i, v := range compassOrder {
		if v == c {
			return float64(i) * 45, true
		}
	}
	return 0, false
}

// Valid 8方位のいずれかかどうか
func (c Compass) Valid() bool {
	_, ok := c.Degrees()
	return ok
}
