package repository

import (
	"context"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// SubmissionWindowRepository 月度提交窗口数据访问接口
type SubmissionWindowRepository interface {
	Get(ctx context.Context, yearMonth string) (*model.SubmissionWindow, error)
	List(ctx context.Context) ([]model.SubmissionWindow, error)
	Create(ctx context.Context, window *model.SubmissionWindow) error
	Update(ctx context.Context, window *model.SubmissionWindow) error
}

type submissionWindowRepo struct {
	db *gorm.DB
}

// NewSubmissionWindowRepo 创建 SubmissionWindowRepository 实例
func NewSubmissionWindowRepo(db *gorm.DB) SubmissionWindowRepository {
	return &submissionWindowRepo{db: db}
}

func (r *submissionWindowRepo) Get(ctx context.Context, yearMonth string) (*model.SubmissionWindow, error) {
	var window model.SubmissionWindow
	err := r.db.WithContext(ctx).Where("year_month = ?", yearMonth).First(&window).Error
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *submissionWindowRepo) List(ctx context.Context) ([]model.SubmissionWindow, error) {
	var windows []model.SubmissionWindow
	err := r.db.WithContext(ctx).Order("year_month DESC").Find(&windows).Error
	return windows, err
}

func (r *submissionWindowRepo) Create(ctx context.Context, window *model.SubmissionWindow) error {
	return r.db.WithContext(ctx).Create(window).Error
}

func (r *submissionWindowRepo) Update(ctx context.Context, window *model.SubmissionWindow) error {
	return r.db.WithContext(ctx).Save(window).Error
}
