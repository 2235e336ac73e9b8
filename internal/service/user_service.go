package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"decanat/internal/dto"
	"decanat/internal/model"
	"decanat/internal/repository"
	pkgerrors "decanat/pkg/errors"
)

var (
	ErrProfileNotFound = errors.New("关联的学生/教师/教务人员不存在")
	ErrProfileTaken    = errors.New("该实体已关联其他账号")
)

// TokenRevoker 使账号已签发的 Token 全部失效（由 pkg/redis 实现）
type TokenRevoker interface {
	RevokeUserTokens(ctx context.Context, userID int, ttl time.Duration) error
}

// UserService 账号管理业务接口
type UserService interface {
	List(ctx context.Context) ([]dto.UserInfo, error)
	// LinkProfile 设置账号关联的实体，角色随之切换；该账号已签发的 Token 随即失效
	LinkProfile(ctx context.Context, userID int, req *dto.LinkProfileRequest) (*dto.UserInfo, error)
}

type userService struct {
	repo     *repository.Repository
	revoker  TokenRevoker
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewUserService 创建 UserService 实例
// revoker 可为 nil；tokenTTL 为 Access Token 有效期，决定失效记录的保留时长
func NewUserService(repo *repository.Repository, revoker TokenRevoker, tokenTTL time.Duration, logger *zap.Logger) UserService {
	return &userService{repo: repo, revoker: revoker, tokenTTL: tokenTTL, logger: logger}
}

func (s *userService) List(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出账号失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		result = append(result, toUserInfo(&users[i]))
	}
	return result, nil
}

func (s *userService) LinkProfile(ctx context.Context, userID int, req *dto.LinkProfileRequest) (*dto.UserInfo, error) {
	profileID := req.ProfileID
	profile := model.Profile{Role: model.Role(req.Role), ID: &profileID}
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	// 1. 账号存在
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 2. 实体存在
	exists, err := s.profileExists(ctx, profile)
	if err != nil {
		s.logger.Error("查询关联实体失败", zap.String("role", req.Role), zap.Int("profile_id", profileID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrProfileNotFound
	}

	// 3. 实体未被其他账号占用
	owner, err := s.repo.User.GetByProfile(ctx, profile.Role, profileID)
	switch {
	case err == nil && owner.ID != user.ID:
		return nil, ErrProfileTaken
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("查询实体关联账号失败", zap.Error(err))
		return nil, err
	}

	// 4. 写入
	if err := s.repo.User.UpdateProfile(ctx, user.ID, profile); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrProfileTaken
		}
		s.logger.Error("更新账号关联失败", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 5. 旧 Token 携带旧角色，强制重新登录；关联已提交，失败只记录
	if s.revoker != nil {
		if err := s.revoker.RevokeUserTokens(ctx, user.ID, s.tokenTTL); err != nil {
			s.logger.Warn("使旧 Token 失效失败", zap.Int("user_id", user.ID), zap.Error(err))
		}
	}

	user.SetProfile(profile)
	info := toUserInfo(user)
	return &info, nil
}

func (s *userService) profileExists(ctx context.Context, p model.Profile) (bool, error) {
	switch p.Role {
	case model.RoleStudent:
		return s.repo.Student.Exists(ctx, *p.ID)
	case model.RoleTeacher:
		return s.repo.Teacher.Exists(ctx, *p.ID)
	case model.RoleDecanatWorker:
		return s.repo.DecanatWorker.Exists(ctx, *p.ID)
	}
	return false, nil
}
