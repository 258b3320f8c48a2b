package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"social-server/apps/social-service/model"
	"social-server/pkg/database"
)

// friendDAO 好友关系数据访问对象
type friendDAO struct {
	db *database.PostgreSQL
}

// NewFriendDAO 创建好友DAO实例
func NewFriendDAO(db *database.PostgreSQL) FriendDAO {
	return &friendDAO{db: db}
}

// pairScope 规范化对查询：同时匹配 (a,b) 和 (b,a) 两个方向
// 所有读路径必须走这里，禁止调用方自己拼方向条件
func pairScope(db *gorm.DB, a, b int64) *gorm.DB {
	return db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a)
}

// CreateLink 创建待确认的好友申请
// 预检查只是快速失败的优化，pair_min/pair_max上的唯一索引才是竞态防线
func (d *friendDAO) CreateLink(ctx context.Context, fromID, toID int64) (*model.Friend, error) {
	link := &model.Friend{
		UserID:   fromID,
		FriendID: toID,
		Status:   model.FriendStatusPending,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := pairScope(tx.Model(&model.Friend{}), fromID, toID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check friend link: %w", err)
		}
		if count > 0 {
			return model.ErrFriendRequestExists
		}
		return tx.Create(link).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// 并发写入撞到了唯一索引，语义上仍是"关系已存在"
			return nil, model.ErrFriendRequestExists
		}
		if errors.Is(err, model.ErrFriendRequestExists) {
			return nil, model.ErrFriendRequestExists
		}
		return nil, fmt.Errorf("failed to create friend link: %w", err)
	}

	return link, nil
}

// AcceptLink 接受好友申请
// 单条带条件的UPDATE本身就是原子的：只有requester->accepter方向的
// pending记录才会被翻成accepted，申请方无法接受自己的申请
func (d *friendDAO) AcceptLink(ctx context.Context, accepterID, requesterID int64) error {
	result := d.db.WithContext(ctx).Model(&model.Friend{}).
		Where("user_id = ? AND friend_id = ? AND status = ?",
			requesterID, accepterID, model.FriendStatusPending).
		Update("status", model.FriendStatusAccepted)
	if result.Error != nil {
		return fmt.Errorf("failed to accept friend link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrFriendLinkNotFound
	}
	return nil
}

// DeleteLink 删除两人之间的任何关系记录，无记录时为no-op
func (d *friendDAO) DeleteLink(ctx context.Context, userID, otherID int64) error {
	if err := pairScope(d.db.WithContext(ctx), userID, otherID).
		Delete(&model.Friend{}).Error; err != nil {
		return fmt.Errorf("failed to delete friend link: %w", err)
	}
	return nil
}

// GetLink 获取两人之间的关系记录（不区分方向）
func (d *friendDAO) GetLink(ctx context.Context, userID, otherID int64) (*model.Friend, error) {
	var link model.Friend
	if err := pairScope(d.db.WithContext(ctx), userID, otherID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrFriendLinkNotFound
		}
		return nil, fmt.Errorf("failed to get friend link: %w", err)
	}
	return &link, nil
}

// ListAcceptedPeers 获取已确认的好友，不论记录存的是哪个方向
func (d *friendDAO) ListAcceptedPeers(ctx context.Context, userID int64) ([]*model.User, error) {
	var users []*model.User
	err := d.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN friends f ON users.id = CASE WHEN f.user_id = ? THEN f.friend_id ELSE f.user_id END", userID).
		Where("(f.user_id = ? OR f.friend_id = ?) AND f.status = ?",
			userID, userID, model.FriendStatusAccepted).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return users, nil
}

// ListIncomingRequesters 获取向该用户发出且仍待处理的申请人
func (d *friendDAO) ListIncomingRequesters(ctx context.Context, userID int64) ([]*model.User, error) {
	var users []*model.User
	err := d.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN friends f ON f.user_id = users.id").
		Where("f.friend_id = ? AND f.status = ?", userID, model.FriendStatusPending).
		Order("f.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	return users, nil
}

// CountAccepted 统计已确认好友数
func (d *friendDAO) CountAccepted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Friend{}).
		Where("(user_id = ? OR friend_id = ?) AND status = ?",
			userID, userID, model.FriendStatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count friends: %w", err)
	}
	return count, nil
}
