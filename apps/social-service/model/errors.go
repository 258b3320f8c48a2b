package model

import "errors"

// 业务错误
// 校验类错误在改动任何状态之前返回；唯一性竞态由存储层约束兜底，
// DAO负责把约束冲突翻译回这里的哨兵错误
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrFriendRequestExists = errors.New("friend relationship already exists")
	ErrFriendLinkNotFound  = errors.New("no matching friend request")
	ErrInvalidTransition   = errors.New("invalid friendship transition")
	ErrEmptyContent        = errors.New("message content is empty")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)
