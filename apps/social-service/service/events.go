package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"social-server/pkg/logger"
)

// 事件类型
// 好友表删行是破坏性的，不留历史；这条追加型事件流水是唯一的审计线索
const (
	EventFriendRequested = "friend.requested"
	EventFriendAccepted  = "friend.accepted"
	EventFriendRemoved   = "friend.removed"
	EventMessageSent     = "message.sent"
	EventUserRegistered  = "user.registered"
)

// Event 审计事件
type Event struct {
	Type      string `json:"type"`
	ActorID   int64  `json:"actor_id"`
	SubjectID int64  `json:"subject_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// publishEvent 发布审计事件
// 尽力而为：发布失败只记日志，不影响已提交的业务结果
func (s *Service) publishEvent(ctx context.Context, eventType string, actorID, subjectID int64) {
	if s.kafka == nil {
		return
	}

	event := Event{
		Type:      eventType,
		ActorID:   actorID,
		SubjectID: subjectID,
		Timestamp: time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error(ctx, "Failed to marshal event", logger.F("type", eventType), logger.F("error", err.Error()))
		return
	}

	key := []byte(strconv.FormatInt(actorID, 10))
	if err := s.kafka.SendMessage(s.eventTopic, key, payload); err != nil {
		s.log.Error(ctx, "Failed to publish event", logger.F("type", eventType), logger.F("error", err.Error()))
	}
}
