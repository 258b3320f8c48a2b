package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/model"
	"social-server/pkg/httpx"
	"social-server/pkg/logger"
	"social-server/pkg/middleware"
)

// UpdateProfileRequest 修改个人资料请求
// 指针字段区分"未提交"和"清空"
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	About     *string `json:"about"`
	Avatar    *string `json:"avatar"`
}

// ListUsers 用户列表，search参数非空时按关键字检索
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	users, err := h.svc.ListUsers(ctx, viewerID, c.Query("search"))
	if err != nil {
		h.log.Error(ctx, "List users failed", logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.UserModelsToInfo(users), nil)
}

// GetProfile 个人主页：用户资料、关系状态和好友数
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	view, err := h.svc.ProfileView(ctx, viewerID, c.Param("username"))
	if err != nil {
		h.log.Error(ctx, "Get profile failed",
			logger.F("username", c.Param("username")),
			logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.ProfileViewToInfo(view), nil)
}

// UpdateProfile 修改自己的个人资料
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, model.ErrInvalidCredentials)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid update profile request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.svc.UpdateProfile(ctx, viewerID, model.ProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		About:     req.About,
		Avatar:    req.Avatar,
	})
	if err != nil {
		h.log.Error(ctx, "Update profile failed", logger.F("user_id", viewerID), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.UserModelToInfo(user), nil)
}
