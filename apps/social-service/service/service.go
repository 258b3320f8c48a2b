package service

import (
	"fmt"
	"time"

	"social-server/apps/social-service/dao"
	"social-server/pkg/kafka"
	"social-server/pkg/logger"
	"social-server/pkg/redis"
	"social-server/pkg/snowflake"
)

// unreadCacheTTL 未读数缓存有效期
const unreadCacheTTL = 5 * time.Minute

// Service 社交核心服务
// 所有操作都要求显式传入已认证的访问者ID，不从上下文里偷
type Service struct {
	userDAO    dao.UserDAO
	friendDAO  dao.FriendDAO
	messageDAO dao.MessageDAO
	searchDAO  dao.SearchDAO // 可选，为nil时检索退回PostgreSQL

	redis *redis.RedisClient // 可选
	kafka *kafka.Producer    // 可选
	idGen *snowflake.Snowflake
	log   logger.Logger

	eventTopic    string
	defaultAvatar string
}

// Options 服务装配参数
type Options struct {
	UserDAO    dao.UserDAO
	FriendDAO  dao.FriendDAO
	MessageDAO dao.MessageDAO
	SearchDAO  dao.SearchDAO

	Redis *redis.RedisClient
	Kafka *kafka.Producer
	IDGen *snowflake.Snowflake
	Log   logger.Logger

	EventTopic    string
	DefaultAvatar string
}

// NewService 创建社交核心服务
func NewService(opts Options) *Service {
	if opts.DefaultAvatar == "" {
		opts.DefaultAvatar = "default_avatar.png"
	}
	if opts.Log == nil {
		opts.Log = logger.GetLogger()
	}

	return &Service{
		userDAO:       opts.UserDAO,
		friendDAO:     opts.FriendDAO,
		messageDAO:    opts.MessageDAO,
		searchDAO:     opts.SearchDAO,
		redis:         opts.Redis,
		kafka:         opts.Kafka,
		idGen:         opts.IDGen,
		log:           opts.Log,
		eventTopic:    opts.EventTopic,
		defaultAvatar: opts.DefaultAvatar,
	}
}

// unreadCacheKey 未读数缓存键
func unreadCacheKey(userID int64) string {
	return fmt.Sprintf("social:unread:%d", userID)
}
