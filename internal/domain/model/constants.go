package model

// 寝床適性スコアの重み
const (
	MilitaryCrestBonus    = 50
	MilitaryCrestMinRatio = 0.65 // 尾根最高点に対する相対標高（この値を含まない）
	MilitaryCrestMaxRatio = 0.85 // 同上（この値を含まない）
	BenchBonus            = 30
	BenchMinSlopePercent  = 2.0
	BenchMaxSlopePercent  = 8.0
	LeewardBonus          = 20
)

// 移動コスト
const (
	MovementBaseCost           = 1
	SteepSlopeThresholdPercent = 20.0
	SteepSlopePenalty          = 50
	ModerateSlopeThreshold     = 10.0
	ModerateSlopePenalty       = 10
	OpenFieldPenalty           = 20
	ThicketDiscount            = 5
	// MaxMovementCost 傾斜ペナルティと開けた土地のペナルティが全て加算された場合
	MaxMovementCost = MovementBaseCost + SteepSlopePenalty + ModerateSlopePenalty + OpenFieldPenalty

	LandCoverOpenField = "Open Field"
	LandCoverThicket   = "Thicket"
	LandCoverTimber    = "Timber"
	LandCoverWater     = "Water"
)

// 地形分類
const (
	RidgeStdDevFactor            = 1.0
	FlatStdDevFactor             = 0.5
	ThermalTunnelMaxSlopeDegrees = 5.0
)

// 風・近接
const (
	WindExposedMaxAngle   = 45.0
	WindShelteredMinAngle = 135.0
	ProximityMaxFeet      = 1000.0
	ProximityMaxResults   = 5
	FeetPerDegree         = 364000.0 // 緯度1度あたりの概算フィート
	FeetPerMeter          = 3.280839895
	SquareMetersPerAcre   = 4046.8564224
)

// グリッド・ビジョン
const (
	DefaultBaseResolution  = 10
	PrecisionResolution    = 12
	VisionBoxScale         = 1000.0
	MinDetectionConfidence = 0.5
)

// 表示用の相対位置・風向き
const (
	PositionNorth   = "North"
	PositionSouth   = "South"
	PositionEast    = "East"
	PositionWest    = "West"
	PositionCentral = "Central"
	PositionUnknown = "Unknown"

	OrientationUnknown = "Unknown"

	WindExposureSheltered = "Sheltered (leeward)"
	WindExposurePartial   = "Partial exposure"
	WindExposureUnknown   = "Unknown"
	WindExposedFormat     = "Exposed to %s"
)
