package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/model"
	"social-server/pkg/httpx"
	"social-server/pkg/logger"
	"social-server/pkg/middleware"
)

// FriendRequest 好友操作请求，user_id是对方
type FriendRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// FriendsPage 好友页：已确认的好友加待处理的入站申请
func (h *HTTPHandler) FriendsPage(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	page, err := h.svc.FriendsPageView(ctx, viewerID)
	if err != nil {
		h.log.Error(ctx, "Friends page failed", logger.F("user_id", viewerID), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.FriendsPageToInfo(page), nil)
}

// SendRequest 发起好友申请
func (h *HTTPHandler) SendRequest(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	var req FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid friend request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.SendFriendRequest(ctx, viewerID, req.UserID); err != nil {
		h.log.Error(ctx, "Send friend request failed",
			logger.F("from", viewerID),
			logger.F("to", req.UserID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, gin.H{"status": model.RelationPendingOutgoing}, nil)
}

// AcceptRequest 接受好友申请，user_id是申请人
func (h *HTTPHandler) AcceptRequest(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	var req FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid accept request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.AcceptFriendRequest(ctx, viewerID, req.UserID); err != nil {
		h.log.Error(ctx, "Accept friend request failed",
			logger.F("accepter", viewerID),
			logger.F("requester", req.UserID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, gin.H{"status": model.RelationAccepted}, nil)
}

// RemoveFriend 解除关系，撤回申请、拒绝申请和删好友共用
func (h *HTTPHandler) RemoveFriend(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	var req FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid remove friend request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.svc.RemoveFriend(ctx, viewerID, req.UserID); err != nil {
		h.log.Error(ctx, "Remove friend failed",
			logger.F("user_id", viewerID),
			logger.F("other", req.UserID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, gin.H{"status": model.RelationNone}, nil)
}
