package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"social-server/apps/social-service/model"
	"social-server/pkg/logger"
	"social-server/pkg/redis"
)

// SendMessage 发私信
// 好友关系不是前置条件：任意两个已注册用户都可以互发。
// 内容去掉首尾空白后为空直接拒绝，不落库
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrEmptyContent
	}

	if _, err := s.userDAO.GetUserByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     time.Now(),
	}
	if s.idGen != nil {
		msg.ID = s.idGen.Generate()
	}

	if err := s.messageDAO.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.invalidateUnreadCache(ctx, receiverID)
	s.publishEvent(ctx, EventMessageSent, senderID, receiverID)

	s.log.Info(ctx, "Message sent",
		logger.F("sender", senderID),
		logger.F("receiver", receiverID),
		logger.F("message_id", msg.ID))
	return msg, nil
}

// ListDialogues 会话列表：每个对端一条，按最近消息时间倒序
func (s *Service) ListDialogues(ctx context.Context, viewerID int64) ([]*model.Dialogue, error) {
	return s.messageDAO.ListDialogues(ctx, viewerID)
}

// GetThread 读整段对话
// 查看即标记已读，两步在DAO的同一个事务里完成；
// 自己发出的消息不受查看影响
func (s *Service) GetThread(ctx context.Context, viewerID, peerID int64) ([]*model.Message, error) {
	if _, err := s.userDAO.GetUserByID(ctx, peerID); err != nil {
		return nil, err
	}

	messages, err := s.messageDAO.GetThreadAndMarkRead(ctx, viewerID, peerID)
	if err != nil {
		return nil, err
	}

	s.invalidateUnreadCache(ctx, viewerID)
	return messages, nil
}

// UnreadCount 未读消息数，带Redis缓存
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if s.redis != nil {
		if cached, err := s.redis.GetInt64(ctx, unreadCacheKey(userID)); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "Unread cache read failed", logger.F("user_id", userID))
		}
	}

	count, err := s.messageDAO.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, unreadCacheKey(userID), count, unreadCacheTTL); err != nil {
			s.log.Warn(ctx, "Unread cache write failed", logger.F("user_id", userID))
		}
	}

	return count, nil
}

// invalidateUnreadCache 未读数发生变化时清缓存
func (s *Service) invalidateUnreadCache(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCacheKey(userID)); err != nil {
		s.log.Warn(ctx, "Unread cache invalidation failed", logger.F("user_id", userID))
	}
}
