package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"decanat/internal/dto"
	"decanat/internal/model"
	"decanat/internal/repository"
	pkgerrors "decanat/pkg/errors"
	"decanat/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrPasswordTooLong    = errors.New("密码过长（最多 72 字节）")
)

// maxPasswordBytes bcrypt 只接受 72 字节以内的密码，按字节而非字符计
const maxPasswordBytes = 72

// TokenBlacklist Token 黑名单存储（由 pkg/redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	// Register 注册账号，新账号角色为 Student 且未关联实体
	Register(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	// Logout 将 Token 加入黑名单直至其过期；未配置黑名单时为空操作
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID int) (*dto.UserInfo, error)
}

type authService struct {
	repo       *repository.Repository
	jwtMgr     *jwt.Manager
	blacklist  TokenBlacklist
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService 创建 AuthService 实例，blacklist 可为 nil
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:       repo,
		jwtMgr:     jwtMgr,
		blacklist:  blacklist,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, error) {
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// 1. 用户名唯一性
	exists, err := s.repo.User.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("检查用户名失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 3. 写入（并发注册由唯一索引兜底）
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("创建账号失败", zap.Error(err))
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, string(user.Role), user.ProfileID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResult{
		User:        toUserInfo(user),
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Int("user_id", claims.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID int) (*dto.UserInfo, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}
