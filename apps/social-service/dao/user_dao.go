package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"social-server/apps/social-service/model"
	"social-server/pkg/database"
)

// uniqueViolationCode PostgreSQL唯一约束冲突
const uniqueViolationCode = "23505"

// isUniqueViolation 判断是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// userDAO 用户数据访问对象
type userDAO struct {
	db *database.PostgreSQL
}

// NewUserDAO 创建用户DAO实例
func NewUserDAO(db *database.PostgreSQL) UserDAO {
	return &userDAO{db: db}
}

// CreateUser 创建用户
// 用户名唯一性以数据库约束为准，冲突翻译为ErrDuplicateUsername
func (d *userDAO) CreateUser(ctx context.Context, user *model.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID 根据ID获取用户
func (d *userDAO) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户（大小写敏感的精确匹配）
func (d *userDAO) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// UpdateProfile 更新个人资料展示字段
// updates由service层按白名单构造，用户名、密码和ID永远不在其中
func (d *userDAO) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// ListUsers 获取除指定用户外的全部用户，按用户名排序
func (d *userDAO) ListUsers(ctx context.Context, excludeID int64) ([]*model.User, error) {
	var users []*model.User
	if err := d.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("username").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SearchUsers 按关键字检索用户（PostgreSQL兜底路径）
func (d *userDAO) SearchUsers(ctx context.Context, keyword string, excludeID int64) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + keyword + "%"
	if err := d.db.WithContext(ctx).
		Where("(username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?) AND id <> ?",
			pattern, pattern, pattern, excludeID).
		Order("username").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// GetUsersByIDs 批量获取用户
func (d *userDAO) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var users []*model.User
	if err := d.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return users, nil
}
