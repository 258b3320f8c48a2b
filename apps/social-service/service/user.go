package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"social-server/apps/social-service/model"
	"social-server/pkg/logger"
)

// RegisterParams 注册参数
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Register 用户注册
// 用户名大小写敏感、精确匹配；重名以数据库唯一约束为准
func (s *Service) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	// 预检查，快速失败；并发下真正的防线是唯一约束
	if _, err := s.userDAO.GetUserByUsername(ctx, username); err == nil {
		return nil, model.ErrDuplicateUsername
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Avatar:       s.defaultAvatar,
	}

	if err := s.userDAO.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.indexUser(ctx, user)
	s.publishEvent(ctx, EventUserRegistered, user.ID, 0)

	s.log.Info(ctx, "User registered",
		logger.F("user_id", user.ID),
		logger.F("username", user.Username))
	return user, nil
}

// Authenticate 校验用户名和密码
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID 根据ID获取用户
func (s *Service) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userDAO.GetUserByID(ctx, userID)
}

// GetUserByUsername 根据用户名获取用户
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userDAO.GetUserByUsername(ctx, username)
}

// UpdateProfile 部分更新个人资料
// 只允许展示字段，用户名、密码和ID不可经此修改
func (s *Service) UpdateProfile(ctx context.Context, userID int64, fields model.ProfileFields) (*model.User, error) {
	updates := make(map[string]interface{}, 4)
	if fields.FirstName != nil {
		updates["first_name"] = *fields.FirstName
	}
	if fields.LastName != nil {
		updates["last_name"] = *fields.LastName
	}
	if fields.About != nil {
		updates["about"] = *fields.About
	}
	if fields.Avatar != nil {
		updates["avatar"] = *fields.Avatar
	}

	if err := s.userDAO.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, err
	}

	user, err := s.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.indexUser(ctx, user)
	return user, nil
}

// ListUsers 用户列表，keyword非空时走检索
// ElasticSearch不可用时退回PostgreSQL的模糊匹配
func (s *Service) ListUsers(ctx context.Context, viewerID int64, keyword string) ([]*model.User, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.userDAO.ListUsers(ctx, viewerID)
	}

	if s.searchDAO != nil {
		ids, err := s.searchDAO.SearchUserIDs(ctx, keyword, viewerID)
		if err == nil {
			if len(ids) == 0 {
				return nil, nil
			}
			users, err := s.userDAO.GetUsersByIDs(ctx, ids)
			if err == nil {
				return orderByIDs(users, ids), nil
			}
		}
		s.log.Warn(ctx, "Search via ElasticSearch failed, falling back to PostgreSQL",
			logger.F("keyword", keyword))
	}

	return s.userDAO.SearchUsers(ctx, keyword, viewerID)
}

// indexUser 尽力而为地同步检索索引
func (s *Service) indexUser(ctx context.Context, user *model.User) {
	if s.searchDAO == nil {
		return
	}
	if err := s.searchDAO.IndexUser(ctx, user); err != nil {
		s.log.Warn(ctx, "Failed to index user",
			logger.F("user_id", user.ID),
			logger.F("error", err.Error()))
	}
}

// orderByIDs 按检索命中的先后排列用户
func orderByIDs(users []*model.User, ids []int64) []*model.User {
	byID := make(map[int64]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	ordered := make([]*model.User, 0, len(users))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			ordered = append(ordered, user)
		}
	}
	return ordered
}
