package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/model"
	"social-server/pkg/httpx"
	"social-server/pkg/logger"
	"social-server/pkg/middleware"
)

// SendMessageRequest 发私信请求
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content"`
}

// ListDialogues 会话列表，按最近消息时间倒序
func (h *HTTPHandler) ListDialogues(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	dialogues, err := h.svc.ListDialogues(ctx, viewerID)
	if err != nil {
		h.log.Error(ctx, "List dialogues failed", logger.F("user_id", viewerID), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.DialogueModelsToInfo(dialogues), nil)
}

// GetThread 读与某个对端的整段对话，查看的同时标记入站消息已读
func (h *HTTPHandler) GetThread(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	peerID, err := strconv.ParseInt(c.Param("peerID"), 10, 64)
	if err != nil {
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	messages, err := h.svc.GetThread(ctx, viewerID, peerID)
	if err != nil {
		h.log.Error(ctx, "Get thread failed",
			logger.F("viewer", viewerID),
			logger.F("peer", peerID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.MessageModelsToInfo(messages), nil)
}

// SendMessage 发私信
func (h *HTTPHandler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid send message request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	msg, err := h.svc.SendMessage(ctx, viewerID, req.ReceiverID, req.Content)
	if err != nil {
		h.log.Error(ctx, "Send message failed",
			logger.F("sender", viewerID),
			logger.F("receiver", req.ReceiverID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.MessageModelToInfo(msg), nil)
}

// UnreadCount 未读消息数
func (h *HTTPHandler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	count, err := h.svc.UnreadCount(ctx, viewerID)
	if err != nil {
		h.log.Error(ctx, "Unread count failed", logger.F("user_id", viewerID), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, gin.H{"unread": count}, nil)
}
