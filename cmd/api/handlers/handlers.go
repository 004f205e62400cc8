package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemma-chat/cmd/api/dto"
	"gemma-chat/cmd/api/services"
	"gemma-chat/cmd/internal/logger"
	"gemma-chat/web"
)

const (
	MsgSessionNotFound = "セッションが見つかりません"
	MsgSessionDeleted  = "セッションを削除しました"
	MsgMessageRequired = "メッセージが必要です"
	MsgHistoryCleared  = "チャット履歴をクリアしました"
)

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "OK"})
	}
}

// IndexHandler serves the embedded chat front-end.
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := web.IndexHTML()
		if err != nil {
			logger.ErrorWithFields("index page unavailable", logger.Fields{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: services.MsgInternalError})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

func internalError(c *gin.Context, msg string, err error) {
	logger.ErrorWithFields(msg, logger.Fields{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: services.MsgInternalError})
}
