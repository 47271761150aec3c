package repository

import "LandPlan-App/internal/domain/model"

// DetectionParser ビジョンモデルの出力テキストを検出結果に変換する
type DetectionParser interface {
	ParseDetections(raw string) ([]model.Detection, error)
}
