package dao

import (
	"context"

	"social-server/apps/social-service/model"
)

// UserDAO 用户数据访问接口
type UserDAO interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error
	ListUsers(ctx context.Context, excludeID int64) ([]*model.User, error)
	SearchUsers(ctx context.Context, keyword string, excludeID int64) ([]*model.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error)
}

// FriendDAO 好友关系数据访问接口
// 一个无序对只有一行有向记录，所有双向匹配逻辑都收在实现里，
// 调用方不允许自己拼方向
type FriendDAO interface {
	CreateLink(ctx context.Context, fromID, toID int64) (*model.Friend, error)
	AcceptLink(ctx context.Context, accepterID, requesterID int64) error
	DeleteLink(ctx context.Context, userID, otherID int64) error
	GetLink(ctx context.Context, userID, otherID int64) (*model.Friend, error)
	ListAcceptedPeers(ctx context.Context, userID int64) ([]*model.User, error)
	ListIncomingRequesters(ctx context.Context, userID int64) ([]*model.User, error)
	CountAccepted(ctx context.Context, userID int64) (int64, error)
}

// MessageDAO 私信数据访问接口
type MessageDAO interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListDialogues(ctx context.Context, viewerID int64) ([]*model.Dialogue, error)
	GetThreadAndMarkRead(ctx context.Context, viewerID, peerID int64) ([]*model.Message, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// SearchDAO 用户检索接口（ElasticSearch）
type SearchDAO interface {
	IndexUser(ctx context.Context, user *model.User) error
	SearchUserIDs(ctx context.Context, keyword string, excludeID int64) ([]int64, error)
}
