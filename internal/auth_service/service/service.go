package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"askmira/internal/auth_service/store"
	"askmira/internal/models"
)

// Sentinel errors mapped to HTTP statuses by the API layer.
var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore 是 Service 依赖的用户存储接口。
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) error
}

// TokenRevoker 维护已注销 token 的黑名单。
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service 封装了注册、登录与 token 管理的业务逻辑。
type Service struct {
	store     UserStore
	tokens    TokenRevoker
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService 创建一个新的 Service 实例。tokens 可以为 nil，此时不支持注销。
func NewService(s UserStore, tokens TokenRevoker, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 60 * time.Minute
	}
	return &Service{
		store:     s,
		tokens:    tokens,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register 处理新用户注册。用户名重复时返回 ErrUserExists。
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if _, err := s.store.GetUserByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Status:   models.StatusActive,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验用户名和密码，成功时签发一个 JWT。
// 用户不存在与密码错误返回同一个错误，避免泄露用户是否存在。
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	lastLogin := now
	user.LastLoginAt = &lastLogin
	// 登录时间仅作记录，更新失败不影响登录。
	_ = s.store.UpdateUser(user)

	return s.generateJWT(username, now)
}

// Logout 将一个已签发的 token 加入黑名单，直到其自然过期。
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	if s.tokens == nil {
		return nil
	}

	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no jti claim")
	}

	ttl := time.Duration(0)
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}
	return s.tokens.Revoke(ctx, jti, ttl)
}

// CurrentUser 按用户名加载用户，用于受保护路由。
func (s *Service) CurrentUser(username string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ParseToken 解析并验证一个 JWT，返回其 claims。
func (s *Service) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// generateJWT 为指定用户名签发一个带 jti 的 HS256 JWT。
func (s *Service) generateJWT(username string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
