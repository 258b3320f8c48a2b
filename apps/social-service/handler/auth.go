package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/service"
	"social-server/pkg/auth"
	"social-server/pkg/httpx"
	"social-server/pkg/logger"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (h *HTTPHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid register request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.svc.Register(ctx, service.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.log.Error(ctx, "Register failed", logger.F("username", req.Username), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	httpx.WriteObject(c, h.conv.UserModelToInfo(user), nil)
}

// Login 登录，换取JWT
func (h *HTTPHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error(ctx, "Invalid login request", logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.log.Error(ctx, "Login failed", logger.F("username", req.Username), logger.F("error", err.Error()))
		httpx.WriteError(c, statusOf(err), err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, h.cfg.App.JWTSecret, time.Duration(h.cfg.App.TokenExpire)*time.Hour)
	if err != nil {
		h.log.Error(ctx, "Generate token failed", logger.F("user_id", user.ID), logger.F("error", err.Error()))
		httpx.WriteError(c, http.StatusInternalServerError, err)
		return
	}

	httpx.WriteObject(c, h.conv.BuildLoginInfo(token, user), nil)
}
