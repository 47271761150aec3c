package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/infrastructure/elevation"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "HEX_BASE_RESOLUTION", "PREVAILING_WIND", "ELEVATION_API_URL", "FEATURE_ANALYSIS_WORKERS", "GIN_MODE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, model.DefaultBaseResolution, cfg.BaseResolution)
	assert.Equal(t, model.CompassW, cfg.PrevailingWind)
	assert.Equal(t, elevation.DefaultOpenElevationURL, cfg.ElevationURL)
	assert.Equal(t, 5, cfg.AnalysisWorker)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HEX_BASE_RESOLUTION", "12")
	t.Setenv("PREVAILING_WIND", "northwest")
	t.Setenv("ELEVATION_API_URL", "flat")
	t.Setenv("FEATURE_ANALYSIS_WORKERS", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.BaseResolution)
	assert.Equal(t, model.CompassNW, cfg.PrevailingWind)
	assert.Equal(t, 2, cfg.AnalysisWorker)
	assert.IsType(t, &elevation.StaticProvider{}, cfg.NewElevationProvider())
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]string{
		"HEX_BASE_RESOLUTION":      "16",
		"PREVAILING_WIND":          "up",
		"FEATURE_ANALYSIS_WORKERS": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestNewElevationProviderHTTP(t *testing.T) {
	cfg := &Config{ElevationURL: "http://localhost:9999/api/v1/lookup"}
	assert.IsType(t, &elevation.OpenElevationProvider{}, cfg.NewElevationProvider())
}
