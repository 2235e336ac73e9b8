package service

import (
	"go.uber.org/zap"

	"decanat/config"
	"decanat/internal/repository"
	"decanat/pkg/jwt"
)

// TokenStore Token 黑名单与账号级失效（由 pkg/redis 实现）
type TokenStore interface {
	TokenBlacklist
	TokenRevoker
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Catalog  CatalogService
	Schedule ScheduleService
	Student  StudentService
	Grade    GradeService
	Export   ExportService
}

// NewService 创建 Service 聚合，tokens 为 nil 时注销与 Token 失效不落地
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenStore,
	logger *zap.Logger,
) *Service {
	// 避免把 typed nil 传入下层接口
	var (
		blacklist TokenBlacklist
		revoker   TokenRevoker
	)
	if tokens != nil {
		blacklist = tokens
		revoker = tokens
	}

	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, blacklist, logger),
		User:     NewUserService(repo, revoker, jwtMgr.TTL(), logger),
		Catalog:  NewCatalogService(repo, logger),
		Schedule: NewScheduleService(repo, logger),
		Student:  NewStudentService(repo, logger),
		Grade:    NewGradeService(repo, logger),
		Export:   NewExportService(repo, &cfg.Calendar, logger),
	}
}
