package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"LandPlan-App/internal/domain/hexgrid"
	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/domain/repository"
	"LandPlan-App/internal/infrastructure/elevation"
)

// OfflineElevation ELEVATION_API_URL にこの値を指定すると外部APIを使わず平坦な地表とする
const OfflineElevation = "flat"

// Config 環境変数から読み込むサーバー設定
type Config struct {
	Port           string
	BaseResolution int
	PrevailingWind model.Compass
	ElevationURL   string
	AnalysisWorker int
	GinMode        string
}

// Load は .env を読み込み（なければ環境変数のみ）、設定値を検証して返す
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("⚠️ .envファイルが見つかりません。システムの環境変数を使用します")
	}
	return FromEnv()
}

// FromEnv は環境変数から設定を組み立てる
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		ElevationURL:   getEnv("ELEVATION_API_URL", elevation.DefaultOpenElevationURL),
		GinMode:        os.Getenv("GIN_MODE"),
		BaseResolution: model.DefaultBaseResolution,
		PrevailingWind: model.CompassW,
		AnalysisWorker: 5,
	}

	if v := os.Getenv("HEX_BASE_RESOLUTION"); v != "" {
		res, err := strconv.Atoi(v)
		if err != nil || !hexgrid.ValidResolution(res) {
			return nil, fmt.Errorf("HEX_BASE_RESOLUTIONは%dから%dの整数で指定してください: %q", hexgrid.MinResolution, hexgrid.MaxResolution, v)
		}
		cfg.BaseResolution = res
	}

	if v := os.Getenv("PREVAILING_WIND"); v != "" {
		wind, ok := model.ParseCompass(v)
		if !ok {
			return nil, fmt.Errorf("PREVAILING_WINDは8方位（N, NE, ... NW）で指定してください: %q", v)
		}
		cfg.PrevailingWind = wind
	}

	if v := os.Getenv("FEATURE_ANALYSIS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("FEATURE_ANALYSIS_WORKERSは正の整数で指定してください: %q", v)
		}
		cfg.AnalysisWorker = n
	}

	return cfg, nil
}

// NewElevationProvider 設定に応じた標高プロバイダ
func (c *Config) NewElevationProvider() repository.ElevationProvider {
	if strings.EqualFold(c.ElevationURL, OfflineElevation) {
		log.Printf("⚠️ 標高APIを使用しません（平坦な地表として解析）")
		return elevation.NewFlatProvider(0)
	}
	return elevation.NewOpenElevationProvider(c.ElevationURL)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
