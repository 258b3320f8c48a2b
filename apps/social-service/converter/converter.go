package converter

import (
	"social-server/apps/social-service/model"
)

// Converter 转换器，提供Model到HTTP响应结构的转换
type Converter struct{}

// NewConverter 创建转换器实例
func NewConverter() *Converter {
	return &Converter{}
}

// UserInfo 用户信息响应结构
type UserInfo struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	About        string `json:"about"`
	Avatar       string `json:"avatar"`
	RegisteredAt int64  `json:"registered_at"`
}

// MessageInfo 消息信息响应结构
type MessageInfo struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
	SentAt     int64  `json:"sent_at"`
	IsRead     bool   `json:"is_read"`
}

// DialogueInfo 会话信息响应结构
type DialogueInfo struct {
	PeerID   int64     `json:"peer_id"`
	Peer     *UserInfo `json:"peer"`
	LastTime int64     `json:"last_time"`
}

// ProfileViewInfo 个人主页响应结构
type ProfileViewInfo struct {
	User         *UserInfo `json:"user"`
	IsOwnProfile bool      `json:"is_own_profile"`
	Relation     string    `json:"relation"`
	FriendsCount int64     `json:"friends_count"`
}

// FriendsPageInfo 好友页响应结构
type FriendsPageInfo struct {
	Friends  []*UserInfo `json:"friends"`
	Incoming []*UserInfo `json:"incoming"`
}

// LoginInfo 登录响应结构
type LoginInfo struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserModelToInfo 将用户Model转换为响应结构
func (c *Converter) UserModelToInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}
	return &UserInfo{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		About:        user.About,
		Avatar:       user.Avatar,
		RegisteredAt: user.RegisteredAt.Unix(),
	}
}

// UserModelsToInfo 将用户Model列表转换为响应结构列表
func (c *Converter) UserModelsToInfo(users []*model.User) []*UserInfo {
	result := make([]*UserInfo, 0, len(users))
	for _, user := range users {
		if info := c.UserModelToInfo(user); info != nil {
			result = append(result, info)
		}
	}
	return result
}

// MessageModelToInfo 将消息Model转换为响应结构
func (c *Converter) MessageModelToInfo(msg *model.Message) *MessageInfo {
	if msg == nil {
		return nil
	}
	return &MessageInfo{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		SentAt:     msg.SentAt.Unix(),
		IsRead:     msg.IsRead,
	}
}

// MessageModelsToInfo 将消息Model列表转换为响应结构列表
func (c *Converter) MessageModelsToInfo(msgs []*model.Message) []*MessageInfo {
	result := make([]*MessageInfo, 0, len(msgs))
	for _, msg := range msgs {
		if info := c.MessageModelToInfo(msg); info != nil {
			result = append(result, info)
		}
	}
	return result
}

// DialogueModelToInfo 将会话Model转换为响应结构
func (c *Converter) DialogueModelToInfo(d *model.Dialogue) *DialogueInfo {
	if d == nil {
		return nil
	}
	return &DialogueInfo{
		PeerID:   d.PeerID,
		Peer:     c.UserModelToInfo(d.Peer),
		LastTime: d.LastTime.Unix(),
	}
}

// DialogueModelsToInfo 将会话Model列表转换为响应结构列表
func (c *Converter) DialogueModelsToInfo(dialogues []*model.Dialogue) []*DialogueInfo {
	result := make([]*DialogueInfo, 0, len(dialogues))
	for _, d := range dialogues {
		if info := c.DialogueModelToInfo(d); info != nil {
			result = append(result, info)
		}
	}
	return result
}

// ProfileViewToInfo 将个人主页读模型转换为响应结构
func (c *Converter) ProfileViewToInfo(view *model.ProfileView) *ProfileViewInfo {
	if view == nil {
		return nil
	}
	return &ProfileViewInfo{
		User:         c.UserModelToInfo(view.User),
		IsOwnProfile: view.IsOwnProfile,
		Relation:     view.Relation,
		FriendsCount: view.FriendsCount,
	}
}

// FriendsPageToInfo 将好友页读模型转换为响应结构
func (c *Converter) FriendsPageToInfo(page *model.FriendsPageView) *FriendsPageInfo {
	if page == nil {
		return nil
	}
	return &FriendsPageInfo{
		Friends:  c.UserModelsToInfo(page.Friends),
		Incoming: c.UserModelsToInfo(page.Incoming),
	}
}

// BuildLoginInfo 构建登录响应
func (c *Converter) BuildLoginInfo(token string, user *model.User) *LoginInfo {
	return &LoginInfo{
		Token: token,
		User:  c.UserModelToInfo(user),
	}
}
