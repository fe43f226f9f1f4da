package store

import (
	"errors"

	"gorm.io/gorm"

	"askmira/internal/models"
)

// ErrUserNotFound 表示按用户名查询不到用户。
var ErrUserNotFound = errors.New("user not found")

// Store 封装了用户数据的持久化操作。
type Store struct {
	DB *gorm.DB
}

// NewStore 创建一个新的 Store 实例。
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// AutoMigrate 创建或更新 users 表结构。
func (s *Store) AutoMigrate() error {
	return s.DB.AutoMigrate(&models.User{})
}

// CreateUser 在数据库中创建一个新用户。
func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByUsername 通过用户名查找用户。
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户信息。
func (s *Store) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}
