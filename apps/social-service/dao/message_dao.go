package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"social-server/apps/social-service/model"
	"social-server/pkg/database"
)

// messageDAO 私信数据访问对象
type messageDAO struct {
	db *database.PostgreSQL
}

// NewMessageDAO 创建私信DAO实例
func NewMessageDAO(db *database.PostgreSQL) MessageDAO {
	return &messageDAO{db: db}
}

// CreateMessage 落库一条私信
func (d *messageDAO) CreateMessage(ctx context.Context, msg *model.Message) error {
	if err := d.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// dialogueRow 聚合查询的扫描目标
type dialogueRow struct {
	PeerID   int64
	LastTime time.Time
}

// ListDialogues 派生会话列表
// 没有会话表：按对端分组取每组最近一次消息时间，最近的排前面
func (d *messageDAO) ListDialogues(ctx context.Context, viewerID int64) ([]*model.Dialogue, error) {
	var rows []dialogueRow
	err := d.db.WithContext(ctx).Model(&model.Message{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS peer_id, MAX(sent_at) AS last_time", viewerID).
		Where("sender_id = ? OR receiver_id = ?", viewerID, viewerID).
		Group("peer_id").
		Order("last_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dialogues: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	peerIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		peerIDs = append(peerIDs, row.PeerID)
	}

	var peers []*model.User
	if err := d.db.WithContext(ctx).Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
		return nil, fmt.Errorf("failed to load dialogue peers: %w", err)
	}
	peerByID := make(map[int64]*model.User, len(peers))
	for _, peer := range peers {
		peerByID[peer.ID] = peer
	}

	dialogues := make([]*model.Dialogue, 0, len(rows))
	for _, row := range rows {
		dialogues = append(dialogues, &model.Dialogue{
			PeerID:   row.PeerID,
			Peer:     peerByID[row.PeerID],
			LastTime: row.LastTime,
		})
	}
	return dialogues, nil
}

// GetThreadAndMarkRead 读整段对话并标记已读
// 读和标记在同一个事务里，且只标记本次取到的那些消息，
// 避免把事务期间并发写入的新消息误标为已读
func (d *messageDAO) GetThreadAndMarkRead(ctx context.Context, viewerID, peerID int64) ([]*model.Message, error) {
	var messages []*model.Message

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				viewerID, peerID, peerID, viewerID).
			Order("sent_at ASC, id ASC").
			Find(&messages).Error; err != nil {
			return err
		}

		unreadIDs := make([]int64, 0, len(messages))
		for _, msg := range messages {
			if msg.ReceiverID == viewerID && !msg.IsRead {
				unreadIDs = append(unreadIDs, msg.ID)
			}
		}
		if len(unreadIDs) == 0 {
			return nil
		}

		if err := tx.Model(&model.Message{}).
			Where("id IN ?", unreadIDs).
			Update("is_read", true).Error; err != nil {
			return err
		}

		// 返回的数据反映标记后的状态
		for _, msg := range messages {
			if msg.ReceiverID == viewerID {
				msg.IsRead = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	return messages, nil
}

// CountUnread 统计未读消息数
func (d *messageDAO) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
