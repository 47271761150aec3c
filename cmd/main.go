package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"LandPlan-App/internal/config"
	"LandPlan-App/internal/domain/service"
	"LandPlan-App/internal/handler"
	"LandPlan-App/internal/infrastructure/ai"
	"LandPlan-App/internal/repository"
	"LandPlan-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 設定の読み込みに失敗: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Dependency injection
	projects := repository.NewMemoryProjectRepository()
	hexIndex := service.NewHexIndexService()
	projectUseCase := usecase.NewProjectUseCase(
		projects,
		hexIndex,
		cfg.NewElevationProvider(),
		ai.NewDetectionParser(),
		usecase.ProjectSettings{BaseResolution: cfg.BaseResolution, PrevailingWind: cfg.PrevailingWind},
	)
	featureAnalyzer := service.NewParallelFeatureAnalyzer(service.NewFeatureAnalyzer(), cfg.AnalysisWorker)
	featureUseCase := usecase.NewFeatureUseCase(projects, featureAnalyzer, cfg.PrevailingWind)

	router := handler.NewRouter(handler.NewProjectHandler(projectUseCase), handler.NewFeatureHandler(featureUseCase))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 LandPlan-App server starting on :%s (解像度: %d, 卓越風向: %s)", cfg.Port, cfg.BaseResolution, cfg.PrevailingWind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ サーバー起動に失敗: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ サーバー停止時にエラー: %v", err)
	}
	log.Printf("✅ サーバーを停止しました")
}
