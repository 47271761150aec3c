package service

import (
	"context"
	"log"
	"sync"
	"time"

	"LandPlan-App/internal/domain/model"
)

// defaultMaxGoroutines 同時に解析する地物の上限
const defaultMaxGoroutines = 5

// ParallelFeatureAnalyzer は複数の地物を並行で解析する
type ParallelFeatureAnalyzer struct {
	analyzer      *FeatureAnalyzer
	maxGoroutines int
}

// NewParallelFeatureAnalyzer は新しい並行解析インスタンスを作成
func NewParallelFeatureAnalyzer(analyzer *FeatureAnalyzer, maxGoroutines int) *ParallelFeatureAnalyzer {
	if maxGoroutines <= 0 {
		maxGoroutines = defaultMaxGoroutines
	}
	return &ParallelFeatureAnalyzer{
		analyzer:      analyzer,
		maxGoroutines: maxGoroutines,
	}
}

type analysisResult struct {
	index   int
	metrics model.SpatialMetrics
}

// AnalyzeAll は全地物のSpatialMetricsを入力と同じ順序で返す
// 各地物は他の全地物（自分自身を含む一覧）を近接判定の候補とする
func (p *ParallelFeatureAnalyzer) AnalyzeAll(ctx context.Context, features []*model.Feature, boundary []model.LatLng, prevailingWind model.Compass) ([]model.SpatialMetrics, error) {
	metrics := make([]model.SpatialMetrics, len(features))
	if len(features) == 0 {
		return metrics, nil
	}

	log.Printf("🚀 地物の並行解析開始: %d件", len(features))
	start := time.Now()

	// セマフォを使用して同時実行数を制限
	semaphore := make(chan struct{}, p.maxGoroutines)
	results := make(chan analysisResult, len(features))
	var wg sync.WaitGroup

	for i, feature := range features {
		wg.Add(1)
		go func(idx int, f *model.Feature) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()

			results <- analysisResult{
				index:   idx,
				metrics: p.analyzer.Analyze(f, boundary, features, prevailingWind),
			}
		}(i, feature)
	}

	// 別のgoroutineでwaitしてチャンネルを閉じる
	go func() {
		wg.Wait()
		close(results)
	}()

	count := 0
	for r := range results {
		metrics[r.index] = r.metrics
		count++
	}

	if err := ctx.Err(); err != nil && count < len(features) {
		log.Printf("❌ 地物の並行解析を中断: %d/%d件 (%v)", count, len(features), err)
		return nil, err
	}

	log.Printf("✅ 地物の並行解析完了: %d件 (%v)", count, time.Since(start))
	return metrics, nil
}
