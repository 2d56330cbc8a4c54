package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/repository"
)

// UserService 用户管理业务接口（管理员）
type UserService interface {
	ListCompleted(ctx context.Context) ([]dto.CompletedUserRow, error)
	AssignRole(ctx context.Context, req *dto.AssignRoleRequest, callerID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListCompleted(ctx context.Context) ([]dto.CompletedUserRow, error) {
	users, err := s.repo.User.ListCompleted(ctx)
	if err != nil {
		s.logger.Error("查询已完成用户失败", zap.Error(err))
		return nil, err
	}

	rows := make([]dto.CompletedUserRow, 0, len(users))
	for i := range users {
		u := &users[i]
		name := ""
		if u.PersonalData != nil {
			if u.PersonalData.FirstName != nil {
				name = *u.PersonalData.FirstName
			}
			if u.PersonalData.LastName != nil {
				if name != "" {
					name += " "
				}
				name += *u.PersonalData.LastName
			}
		}
		rows = append(rows, dto.CompletedUserRow{ID: u.UserID, Name: name, Done: u.Done})
	}
	return rows, nil
}

func (s *userService) AssignRole(ctx context.Context, req *dto.AssignRoleRequest, callerID string) error {
	if err := s.repo.User.UpdateRole(ctx, req.ID, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("分配角色失败", zap.String("user_id", req.ID), zap.Error(err))
		return err
	}

	s.logger.Info("角色已变更",
		zap.String("user_id", req.ID),
		zap.String("role", req.Role),
		zap.String("caller", callerID))
	return nil
}
