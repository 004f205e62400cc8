package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gemma-chat/cmd/api/dto"
	"gemma-chat/cmd/api/services"
	"gemma-chat/models"
)

// ListSessionsHandler godoc
// @Summary      セッション一覧
// @Description  全セッションを作成日時の新しい順に返す。現在のセッションIDも含む。
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  dto.ListSessionsResponseDTO
// @Router       /api/sessions [get]
func ListSessionsHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.List(c.Request.Context())
		if err != nil {
			internalError(c, "list sessions failed", err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CreateSessionHandler godoc
// @Summary      新規セッション作成
// @Description  空のセッションを作成し、現在のセッションにする。
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  dto.CreateSessionResponseDTO
// @Router       /api/sessions [post]
func CreateSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.CreateSession(c.Request.Context())
		if err != nil {
			internalError(c, "create session failed", err)
			return
		}
		c.JSON(http.StatusOK, dto.CreateSessionResponseDTO{ID: session.ID, Title: session.Title})
	}
}

// SwitchSessionHandler godoc
// @Summary      セッション切り替え
// @Description  指定したセッションを現在のセッションにし、メッセージ履歴を返す。
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "セッションID"
// @Success      200  {object}  dto.SessionDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/sessions/{id}/switch [post]
func SwitchSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Switch(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: MsgSessionNotFound})
				return
			}
			internalError(c, "switch session failed", err)
			return
		}
		c.JSON(http.StatusOK, dto.SessionDetailDTO{
			ID:       session.ID,
			Title:    session.Title,
			Messages: toMessageDTOs(session.Messages),
		})
	}
}

// DeleteSessionHandler godoc
// @Summary      セッション削除
// @Description  セッションを削除する。現在のセッションを削除した場合は新しいセッションが作成され、そのIDが newSessionId で返る。
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "セッションID"
// @Success      200  {object}  dto.DeleteSessionResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/sessions/{id} [delete]
func DeleteSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		newID, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: MsgSessionNotFound})
				return
			}
			internalError(c, "delete session failed", err)
			return
		}
		c.JSON(http.StatusOK, dto.DeleteSessionResponseDTO{Message: MsgSessionDeleted, NewSessionID: newID})
	}
}

func toMessageDTOs(messages []models.Message) []dto.ChatMessageDTO {
	out := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.ChatMessageDTO{Role: m.Role, Content: m.Content})
	}
	return out
}
