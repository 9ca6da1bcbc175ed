package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// UserStore 负责账号行的读取与首次登录时的建行。
// 账号资料本身归外部鉴权服务所有，这里只保证行存在。
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 构造 UserStore。
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// EnsureByEmail 按邮箱查找账号，不存在则创建（首次登录建行）。
func (s *UserStore) EnsureByEmail(ctx context.Context, email, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user User
	err := s.db.WithContext(ctx).
		Where(&User{Email: email}).
		Attrs(&User{DisplayName: displayName}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, storageErr("ensure user", err)
	}
	return &user, nil
}

// SetAvatarKey 记录用户照片的对象键。
func (s *UserStore) SetAvatarKey(ctx context.Context, userID uint, key string) error {
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("avatar_key", key).Error; err != nil {
		return storageErr("set avatar key", err)
	}
	return nil
}

// GetAvatarKey 返回用户照片对象键，未设置时为空串。
func (s *UserStore) GetAvatarKey(ctx context.Context, userID uint) (string, error) {
	var user User
	if err := s.db.WithContext(ctx).
		Select("id", "avatar_key").
		First(&user, userID).Error; err != nil {
		return "", storageErr("load user", err)
	}
	return user.AvatarKey, nil
}
