package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"LandPlan-App/internal/domain/model"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// respondError はユースケースのエラーをHTTPステータスに変換して返す
func respondError(c *gin.Context, message string, err error) {
	var validationErr *ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, model.ErrInvalidGeometry),
		errors.Is(err, model.ErrInvalidCellID),
		errors.Is(err, model.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrProjectNotFound), errors.Is(err, model.ErrCellNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// respondBindError はリクエストボディの形式エラーを返す
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "リクエストの形式が正しくありません",
		"details": err.Error(),
	})
}
