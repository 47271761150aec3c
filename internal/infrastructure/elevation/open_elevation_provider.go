package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"LandPlan-App/internal/domain/model"
)

// DefaultOpenElevationURL 公開されているOpen-Elevationのエンドポイント
const DefaultOpenElevationURL = "https://api.open-elevation.com/api/v1/lookup"

// defaultBatchSize 1リクエストあたりの地点数
const defaultBatchSize = 100

// OpenElevationProvider はOpen-Elevation APIを使用した標高取得の実装
type OpenElevationProvider struct {
	baseURL    string
	batchSize  int
	httpClient *http.Client
}

// NewOpenElevationProvider は新しいプロバイダを生成する（baseURLが空なら公開エンドポイント）
func NewOpenElevationProvider(baseURL string) *OpenElevationProvider {
	if baseURL == "" {
		baseURL = DefaultOpenElevationURL
	}
	return &OpenElevationProvider{
		baseURL:    baseURL,
		batchSize:  defaultBatchSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Elevations は地点を一定数ずつまとめてAPIに問い合わせ、入力と同じ順序で標高を返す
func (p *OpenElevationProvider) Elevations(ctx context.Context, points []model.LatLng) ([]float64, error) {
	elevations := make([]float64, 0, len(points))
	for start := 0; start < len(points); start += p.batchSize {
		end := min(start+p.batchSize, len(points))
		batch, err := p.lookup(ctx, points[start:end])
		if err != nil {
			return nil, fmt.Errorf("標高の取得に失敗 (%d-%d件目): %w", start+1, end, err)
		}
		elevations = append(elevations, batch...)
	}
	log.Printf("✅ 標高データ取得完了: %d地点", len(elevations))
	return elevations, nil
}

func (p *OpenElevationProvider) lookup(ctx context.Context, points []model.LatLng) ([]float64, error) {
	// 1. リクエストボディを構築
	req := lookupRequest{Locations: make([]location, len(points))}
	for i, pt := range points {
		req.Locations[i] = location{Latitude: pt.Lat, Longitude: pt.Lng}
	}
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("リクエストのシリアライズに失敗: %w", err)
	}

	// 2. HTTPリクエストを作成・実行
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("API呼び出しエラー (status: %d): %s", resp.StatusCode, string(body))
	}

	// 3. JSONレスポンスをパース
	var apiResp lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	if len(apiResp.Results) != len(points) {
		return nil, fmt.Errorf("結果の件数が一致しません (要求:%d, 取得:%d)", len(points), len(apiResp.Results))
	}

	elevations := make([]float64, len(apiResp.Results))
	for i, r := range apiResp.Results {
		elevations[i] = r.Elevation
	}
	return elevations, nil
}

// --- Open-Elevation APIのリクエスト・レスポンス ---

type lookupRequest struct {
	Locations []location `json:"locations"`
}
type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
type lookupResponse struct {
	Results []lookupResult `json:"results"`
}
type lookupResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}
