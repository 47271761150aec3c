package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"LandPlan-App/internal/domain/model"
	"LandPlan-App/internal/usecase"
)

// ProjectHandler はプロジェクト・グリッドAPIのハンドラー
type ProjectHandler struct {
	projectUseCase usecase.ProjectUseCase
}

// NewProjectHandler は新しいProjectHandlerインスタンスを作成
func NewProjectHandler(projectUseCase usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{projectUseCase: projectUseCase}
}

// CreateProject は境界ポリゴンからグリッドを生成するエンドポイント
// POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validateBoundary(req.Boundary); err != nil {
		respondError(c, "バリデーションエラー", err)
		return
	}

	response, err := h.projectUseCase.CreateProject(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "グリッドの生成に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// ListProjects はプロジェクト一覧のエンドポイント
// GET /projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": h.projectUseCase.ListProjects(c.Request.Context())})
}

// GetProject はプロジェクト概要のエンドポイント
// GET /projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	response, err := h.projectUseCase.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "プロジェクトの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetGrid はグリッドのスナップショットを返すエンドポイント
// GET /projects/:id/grid
func (h *ProjectHandler) GetGrid(c *gin.Context) {
	grid, err := h.projectUseCase.GetGrid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "グリッドの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// GetGridGeoJSON はグリッドをGeoJSONで返すエンドポイント
// GET /projects/:id/geojson
func (h *ProjectHandler) GetGridGeoJSON(c *gin.Context) {
	fc, err := h.projectUseCase.GetGridGeoJSON(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GeoJSONの生成に失敗しました", err)
		return
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, "GeoJSONの生成に失敗しました", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// GetStatistics はグリッドの集計値を返すエンドポイント
// GET /projects/:id/stats
func (h *ProjectHandler) GetStatistics(c *gin.Context) {
	stats, err := h.projectUseCase.GetStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "集計値の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCells は地表分類でセルを絞り込むエンドポイント
// GET /projects/:id/cells?terrain=bedding
func (h *ProjectHandler) GetCells(c *gin.Context) {
	raw := c.Query("terrain")
	if raw == "" {
		respondError(c, "バリデーションエラー", &ValidationError{Field: "terrain", Message: "terrainパラメータは必須です"})
		return
	}
	tag, ok := model.ParseTerrainTag(raw)
	if !ok {
		respondError(c, "バリデーションエラー", &ValidationError{Field: "terrain", Message: "未知の地表分類です: " + raw})
		return
	}

	cells, err := h.projectUseCase.GetCellsByTerrain(c.Request.Context(), c.Param("id"), tag)
	if err != nil {
		respondError(c, "セルの取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"terrain": tag, "cells": cells})
}

// UpdateCell は単一セルの手動編集エンドポイント
// PUT /projects/:id/cells/:cellId
func (h *ProjectHandler) UpdateCell(c *gin.Context) {
	cellID, err := model.ParseCellID(c.Param("cellId"))
	if err != nil {
		respondError(c, "バリデーションエラー", err)
		return
	}

	var patch model.CellPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validatePatch("", &patch); err != nil {
		respondError(c, "バリデーションエラー", err)
		return
	}

	rec, err := h.projectUseCase.UpdateCell(c.Request.Context(), c.Param("id"), cellID, patch)
	if err != nil {
		respondError(c, "セルの更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateCells は複数セルの手動編集エンドポイント
// PATCH /projects/:id/cells
func (h *ProjectHandler) UpdateCells(c *gin.Context) {
	var req model.BatchCellUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	for i := range req.Updates {
		if err := validatePatch(req.Updates[i].ID.String(), &req.Updates[i].Patch); err != nil {
			respondError(c, "バリデーションエラー", err)
			return
		}
	}

	response, err := h.projectUseCase.UpdateCells(c.Request.Context(), c.Param("id"), req.Updates)
	if err != nil {
		respondError(c, "セルの更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ApplyDetections はビジョンモデルの検出結果を反映するエンドポイント
// POST /projects/:id/detections
func (h *ProjectHandler) ApplyDetections(c *gin.Context) {
	var req model.DetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Raw == "" && len(req.Detections) == 0 {
		respondError(c, "バリデーションエラー", &ValidationError{Field: "detections", Message: "rawかdetectionsのどちらかは必須です"})
		return
	}
	if err := req.Viewport.Validate(); err != nil {
		respondError(c, "バリデーションエラー", &ValidationError{Field: "viewport", Message: err.Error()})
		return
	}

	response, err := h.projectUseCase.ApplyDetections(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "検出結果の反映に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Enrich は標高データによる地形解析エンドポイント
// POST /projects/:id/enrich
func (h *ProjectHandler) Enrich(c *gin.Context) {
	var req model.EnrichRequest
	// ボディは省略可能（Content-Length のないチャンク転送も読む）
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBindError(c, err)
			return
		}
	}

	var wind model.Compass
	if req.PrevailingWind != "" {
		parsed, ok := model.ParseCompass(req.PrevailingWind)
		if !ok {
			respondError(c, "バリデーションエラー", &ValidationError{Field: "prevailing_wind", Message: "8方位（N, NE, ... NW）で指定してください"})
			return
		}
		wind = parsed
	}

	result, err := h.projectUseCase.Enrich(c.Request.Context(), c.Param("id"), wind)
	if err != nil {
		respondError(c, "標高解析に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteProject はプロジェクト削除エンドポイント
// DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectUseCase.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "プロジェクトの削除に失敗しました", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// validateBoundary は境界ポリゴンの詳細バリデーションを行う
func validateBoundary(boundary []model.LatLng) error {
	if model.DistinctVertexCount(boundary) < 3 {
		return &ValidationError{Field: "boundary", Message: "境界は3つ以上の異なる頂点が必要です"}
	}
	for _, p := range boundary {
		if p.Lat < -90 || p.Lat > 90 {
			return &ValidationError{Field: "boundary.lat", Message: "緯度は-90から90の範囲で指定してください"}
		}
		if p.Lng < -180 || p.Lng > 180 {
			return &ValidationError{Field: "boundary.lng", Message: "経度は-180から180の範囲で指定してください"}
		}
	}
	return nil
}

// validatePatch はセル編集の値を検証し、地表分類を正規化する
func validatePatch(cellID string, patch *model.CellPatch) error {
	field := func(name string) string {
		if cellID == "" {
			return name
		}
		return cellID + "." + name
	}
	if patch.Terrain != nil {
		tag, ok := model.ParseTerrainTag(string(*patch.Terrain))
		if !ok {
			return &ValidationError{Field: field("terrain"), Message: "未知の地表分類です: " + string(*patch.Terrain)}
		}
		patch.Terrain = model.TerrainPtr(tag)
	}
	if patch.Permeability != nil && (*patch.Permeability < 0 || *patch.Permeability > 1) {
		return &ValidationError{Field: field("permeability"), Message: "透過性は0から1の範囲で指定してください"}
	}
	if patch.Confidence != nil && (*patch.Confidence < 0 || *patch.Confidence > 1) {
		return &ValidationError{Field: field("confidence"), Message: "信頼度は0から1の範囲で指定してください"}
	}
	return nil
}
