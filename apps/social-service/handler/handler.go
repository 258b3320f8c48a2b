package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/converter"
	"social-server/apps/social-service/model"
	"social-server/apps/social-service/service"
	"social-server/pkg/config"
	"social-server/pkg/logger"
)

// HTTPHandler HTTP协议处理器
type HTTPHandler struct {
	svc  *service.Service
	conv *converter.Converter
	cfg  *config.Config
	log  logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, cfg *config.Config, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:  svc,
		conv: converter.NewConverter(),
		cfg:  cfg,
		log:  log,
	}
}

// RegisterRoutes 注册HTTP路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register) // 注册
		auth.POST("/login", h.Login)       // 登录
	}

	users := r.Group("/api/v1/users")
	{
		users.GET("", h.ListUsers)             // 用户列表，支持?search=
		users.GET("/:username", h.GetProfile)  // 个人主页
		users.PUT("/profile", h.UpdateProfile) // 修改个人资料
	}

	friends := r.Group("/api/v1/friends")
	{
		friends.GET("", h.FriendsPage)           // 好友页：好友列表+入站申请
		friends.POST("/request", h.SendRequest)  // 发起好友申请
		friends.POST("/accept", h.AcceptRequest) // 接受好友申请
		friends.POST("/remove", h.RemoveFriend)  // 解除关系
	}

	messages := r.Group("/api/v1/messages")
	{
		messages.GET("", h.ListDialogues)      // 会话列表
		messages.GET("/unread", h.UnreadCount) // 未读消息数
		messages.GET("/:peerID", h.GetThread)  // 整段对话，查看即已读
		messages.POST("", h.SendMessage)       // 发私信
	}
}

// statusOf 业务错误到HTTP状态码的映射
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrFriendLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateUsername), errors.Is(err, model.ErrFriendRequestExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrEmptyContent), errors.Is(err, model.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
