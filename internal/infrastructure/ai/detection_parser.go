package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
)

// ErrNoDetections 出力テキストに検出結果のJSONが見つからない
var ErrNoDetections = errors.New("検出結果のJSONが見つかりません")

// defaultConfidence 信頼度を返さないモデル向けの値
const defaultConfidence = 1.0

// visionDetectionParser ビジョンモデルの出力テキストを解析するDetectionParserの実装
type visionDetectionParser struct{}

// NewDetectionParser は新しいDetectionParserインスタンスを作成
func NewDetectionParser() repository.DetectionParser {
	return &visionDetectionParser{}
}

// rawDetection モデル出力の1件（座標が小数で返る場合がある）
type rawDetection struct {
	Label      string    `json:"label"`
	Box2D      []float64 `json:"box_2d"`
	Confidence *float64  `json:"confidence"`
}

// ParseDetections はJSON配列・```json コードブロック・{"detections": [...]} のいずれかを解析する
// ラベルが空、またはボックスが4要素でない項目は読み飛ばす
func (p *visionDetectionParser) ParseDetections(raw string) ([]model.Detection, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, ErrNoDetections
	}

	var items []rawDetection
	if strings.HasPrefix(payload, "{") {
		var wrapper struct {
			Detections []rawDetection `json:"detections"`
		}
		if err := json.Unmarshal([]byte(payload), &wrapper); err != nil {
			return nil, fmt.Errorf("検出結果のパースに失敗: %w", err)
		}
		items = wrapper.Detections
	} else if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("検出結果のパースに失敗: %w", err)
	}

	detections := make([]model.Detection, 0, len(items))
	for i, item := range items {
		label := strings.TrimSpace(item.Label)
		if label == "" || len(item.Box2D) != 4 {
			log.Printf("⚠️ 検出結果 %d件目を読み飛ばします (label=%q, box=%v)", i+1, item.Label, item.Box2D)
			continue
		}

		d := model.Detection{Label: label, Confidence: defaultConfidence}
		for j, v := range item.Box2D {
			d.Box2D[j] = normalizedCoordinate(v)
		}
		if item.Confidence != nil {
			d.Confidence = math.Max(0, math.Min(1, *item.Confidence))
		}
		detections = append(detections, d)
	}
	return detections, nil
}

// extractJSON はコードブロックや前後の説明文を除いたJSON部分を返す
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if start := strings.Index(text, "```"); start >= 0 {
		body := text[start+3:]
		if nl := strings.Index(body, "\n"); nl >= 0 {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		text = strings.TrimSpace(body)
	}

	open := strings.IndexAny(text, "[{")
	if open < 0 {
		return ""
	}
	closer := "]"
	if text[open] == '{' {
		closer = "}"
	}
	end := strings.LastIndex(text, closer)
	if end < open {
		return ""
	}
	return text[open : end+1]
}

// normalizedCoordinate 四捨五入して0..1000に収める
func normalizedCoordinate(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(model.VisionBoxScale, v))))
}
