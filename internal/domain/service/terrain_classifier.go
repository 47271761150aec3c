package service

import (
	"math"

	"LandPlan-App/internal/domain/model"
)

// ClassifyLandform は地形位置指数（TPI = 標高 - 近傍平均）で地形を分類する
//
// 判定順: TPI > 1σ → RIDGE, TPI < -1σ → DRAW, |TPI| < 0.5σ → FLAT, それ以外 → SLOPE。
// σ == 0（完全に平坦な近傍）や数値でない入力は FLAT を返す。
func ClassifyLandform(elevation, neighborhoodMean, neighborhoodStdDev float64) model.Landform {
	std := math.Abs(neighborhoodStdDev)
	if std == 0 || !isFinite(elevation) || !isFinite(neighborhoodMean) || !isFinite(std) {
		return model.LandformFlat
	}

	tpi := elevation - neighborhoodMean
	switch {
	case tpi > model.RidgeStdDevFactor*std:
		return model.LandformRidge
	case tpi < -model.RidgeStdDevFactor*std:
		return model.LandformDraw
	case math.Abs(tpi) < model.FlatStdDevFactor*std:
		return model.LandformFlat
	default:
		return model.LandformSlope
	}
}

// IsThermalTunnel は傾斜5度未満の谷筋（夕方に冷気が流れ下る移動経路）かどうか
func IsThermalTunnel(landform model.Landform, slopeDegrees float64) bool {
	return landform == model.LandformDraw && slopeDegrees < model.ThermalTunnelMaxSlopeDegrees
}

// NeighborhoodStats は標高サンプルの平均と母標準偏差
func NeighborhoodStats(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))

	var sq float64
	for _, v := range samples {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(samples)))
}

// SlopePercentToDegrees 勾配（%）を角度（度）に変換
func SlopePercentToDegrees(slopePercent float64) float64 {
	return math.Atan(slopePercent/100) * 180 / math.Pi
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
