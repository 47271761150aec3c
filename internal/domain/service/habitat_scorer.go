package service

import "LandPlan-App/internal/domain/model"

// ScoreBedding は寝床適性スコアを加算方式で計算する（正規化なし、下限0）
//
//   - 軍事的稜線（military crest）: 0.65 < 標高/尾根最高標高 < 0.85 で +50（最高標高が0以下なら対象外）
//   - ベンチ（緩斜面の段）: 2 < 勾配% < 8 で +30
//   - 風下: 斜面方位が卓越風向と異なれば +20（8方位の一致判定のみ）
func ScoreBedding(elevation, maxRidgeElevation, slopePercent float64, aspect, prevailingWind model.Compass) int {
	score := 0

	if maxRidgeElevation > 0 {
		relativeHeight := elevation / maxRidgeElevation
		if relativeHeight > model.MilitaryCrestMinRatio && relativeHeight < model.MilitaryCrestMaxRatio {
			score += model.MilitaryCrestBonus
		}
	}

	if slopePercent > model.BenchMinSlopePercent && slopePercent < model.BenchMaxSlopePercent {
		score += model.BenchBonus
	}

	if aspect != prevailingWind {
		score += model.LeewardBonus
	}

	return score
}

// CalculateMovementCost は勾配と土地被覆から移動コストを計算する
// 傾斜ペナルティは累積（25%なら +50 と +10）。下限は設けない（平坦な藪は基本コストを下回る）
func CalculateMovementCost(slopePercent float64, landCover string) int {
	cost := model.MovementBaseCost

	if slopePercent > model.SteepSlopeThresholdPercent {
		cost += model.SteepSlopePenalty
	}
	if slopePercent > model.ModerateSlopeThreshold {
		cost += model.ModerateSlopePenalty
	}

	switch landCover {
	case model.LandCoverOpenField:
		cost += model.OpenFieldPenalty
	case model.LandCoverThicket:
		cost -= model.ThicketDiscount
	}

	return cost
}

// LandCoverFor 地表分類を移動コスト用の土地被覆ラベルに変換
func LandCoverFor(tag model.TerrainTag) string {
	switch tag {
	case model.TerrainOpenPasture, model.TerrainFoodPlot:
		return model.LandCoverOpenField
	case model.TerrainScrubBrush, model.TerrainBedding:
		return model.LandCoverThicket
	case model.TerrainHeavyTimber:
		return model.LandCoverTimber
	case model.TerrainWater:
		return model.LandCoverWater
	default:
		return ""
	}
}

// PermeabilityFromCost 移動コストを 0..1 の透過性に変換（コストが低いほど1に近い）
func PermeabilityFromCost(cost int) float64 {
	p := 1 - float64(cost-model.MovementBaseCost)/float64(model.MaxMovementCost-model.MovementBaseCost)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
