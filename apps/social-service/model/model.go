package model

import (
	"time"

	"gorm.io/gorm"
)

// 好友关系状态
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// 对访问者而言的关系状态
const (
	RelationNone            = "none"
	RelationPendingOutgoing = "pending-outgoing"
	RelationPendingIncoming = "pending-incoming"
	RelationAccepted        = "accepted"
)

// User 用户模型
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(200);not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(50)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(50)"`
	About        string    `json:"about" gorm:"type:text"`
	Avatar       string    `json:"avatar" gorm:"type:varchar(200)"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}

// TableName .
func (User) TableName() string {
	return "users"
}

// Friend 好友关系
// 每个无序对 {A,B} 只存一行有向记录：user_id是发起方，friend_id是接收方。
// 接受申请只改status，不换方向。pair_min/pair_max是规范化的无序对，
// 唯一索引落在这两列上，作为并发写入时的最终防线。
type Friend struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_friend_pair;index"`
	FriendID  int64     `json:"friend_id" gorm:"not null;uniqueIndex:idx_friend_pair;index"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null"`
	PairMin   int64     `json:"-" gorm:"not null;uniqueIndex:idx_friend_pair_canonical"`
	PairMax   int64     `json:"-" gorm:"not null;uniqueIndex:idx_friend_pair_canonical"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (Friend) TableName() string {
	return "friends"
}

// BeforeCreate 入库前填充规范化对
func (f *Friend) BeforeCreate(tx *gorm.DB) error {
	f.PairMin, f.PairMax = CanonicalPair(f.UserID, f.FriendID)
	return nil
}

// Message 私信
// 除is_read外不可变；is_read只会从false翻到true，不会复位
type Message struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	SenderID   int64     `json:"sender_id" gorm:"not null;index:idx_msg_pair"`
	ReceiverID int64     `json:"receiver_id" gorm:"not null;index:idx_msg_pair;index:idx_msg_unread"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	SentAt     time.Time `json:"sent_at" gorm:"index;not null"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false;index:idx_msg_unread"`
}

// TableName .
func (Message) TableName() string {
	return "messages"
}

// ProfileFields 个人资料的部分更新，nil表示不修改
// 用户名、密码和ID不走这条路径
type ProfileFields struct {
	FirstName *string
	LastName  *string
	About     *string
	Avatar    *string
}

// Dialogue 会话摘要：与某个对端的最近一次消息时间
// 没有独立的会话表，这是对消息流水的聚合结果
type Dialogue struct {
	PeerID   int64     `json:"peer_id"`
	Peer     *User     `json:"peer"`
	LastTime time.Time `json:"last_time"`
}

// ProfileView 个人主页读模型
type ProfileView struct {
	User         *User  `json:"user"`
	IsOwnProfile bool   `json:"is_own_profile"`
	Relation     string `json:"relation"`
	FriendsCount int64  `json:"friends_count"`
}

// FriendsPageView 好友页读模型
type FriendsPageView struct {
	Friends  []*User `json:"friends"`
	Incoming []*User `json:"incoming"`
}

// CanonicalPair 规范化无序对 {A,B}：小ID在前
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
