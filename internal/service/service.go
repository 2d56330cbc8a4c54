package service

import (
	"go.uber.org/zap"

	"staff-form/backend/config"
	"staff-form/backend/internal/repository"
	"staff-form/backend/pkg/jwt"
	"staff-form/backend/pkg/redis"
	"staff-form/backend/pkg/sms"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth             AuthService
	Registration     RegistrationService
	Submission       SubmissionService
	SubmissionWindow SubmissionWindowService
	Dashboard        DashboardService
	User             UserService
	Export           ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil，相关能力（限流、token 黑名单）自动降级。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	smsSender sms.Sender,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:             NewAuthService(cfg, repo, jwtMgr, rdb, smsSender, logger),
		Registration:     NewRegistrationService(repo, logger),
		Submission:       NewSubmissionService(repo, logger),
		SubmissionWindow: NewSubmissionWindowService(repo, logger),
		Dashboard:        NewDashboardService(repo, logger),
		User:             NewUserService(repo, logger),
		Export:           NewExportService(repo, logger),
	}
}
