package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemma-chat/cmd/api/dto"
	"gemma-chat/cmd/api/services"
)

// ChatHandler godoc
// @Summary      チャット
// @Description  メッセージをセッション履歴に追加し、Ollama で応答を生成する。sessionId が未知なら新しいセッションを作成する。
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO  "モデル未取得"
// @Failure      503   {object}  dto.ErrorResponseDTO  "Ollama 未起動"
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /api/chat [post]
func ChatHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: MsgMessageRequired})
			return
		}

		resp, chatErr := chatSvc.Chat(c.Request.Context(), req.SessionIDString(), req.Message)
		if chatErr != nil {
			c.JSON(chatErr.StatusCode, dto.ErrorResponseDTO{Error: chatErr.Message})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ClearHistoryHandler godoc
// @Summary      履歴クリア
// @Description  現在のセッションのメッセージ履歴を消去する。
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /api/clear [post]
func ClearHistoryHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearCurrent(c.Request.Context()); err != nil {
			internalError(c, "clear history failed", err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: MsgHistoryCleared})
	}
}
