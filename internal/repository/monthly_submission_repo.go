package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// MonthlySubmissionRepository 月度提交数据访问接口
type MonthlySubmissionRepository interface {
	GetByUserAndMonth(ctx context.Context, userID, yearMonth string) (*model.MonthlySubmission, error)
	// GetLatestFinal 取用户跨月份最新一条终稿（定稿时的差异基线）
	GetLatestFinal(ctx context.Context, userID string) (*model.MonthlySubmission, error)
	Create(ctx context.Context, sub *model.MonthlySubmission) error
	Update(ctx context.Context, sub *model.MonthlySubmission) error
	List(ctx context.Context, userID, yearMonth, status string) ([]model.MonthlySubmission, error)
	// CountFinalByWeek 按自然周统计 since 之后的终稿数量（管理面板走势图）
	CountFinalByWeek(ctx context.Context, since time.Time) ([]WeekCount, error)
	// LockUser 获取用户级 Postgres 事务内咨询锁，串行化同一用户的并发定稿。
	// 仅在事务中调用有意义；事务提交或回滚时自动释放。
	LockUser(ctx context.Context, userID string) error
}

// WeekCount 周维度计数，Week 为该周周一的日期
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type monthlySubmissionRepo struct {
	db *gorm.DB
}

// NewMonthlySubmissionRepo 创建 MonthlySubmissionRepository 实例
func NewMonthlySubmissionRepo(db *gorm.DB) MonthlySubmissionRepository {
	return &monthlySubmissionRepo{db: db}
}

func (r *monthlySubmissionRepo) GetByUserAndMonth(ctx context.Context, userID, yearMonth string) (*model.MonthlySubmission, error) {
	var sub model.MonthlySubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year_month = ?", userID, yearMonth).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *monthlySubmissionRepo) GetLatestFinal(ctx context.Context, userID string) (*model.MonthlySubmission, error) {
	var sub model.MonthlySubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.SubmissionStatusFinal).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *monthlySubmissionRepo) Create(ctx context.Context, sub *model.MonthlySubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *monthlySubmissionRepo) Update(ctx context.Context, sub *model.MonthlySubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *monthlySubmissionRepo) List(ctx context.Context, userID, yearMonth, status string) ([]model.MonthlySubmission, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if yearMonth != "" {
		q = q.Where("year_month = ?", yearMonth)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var subs []model.MonthlySubmission
	err := q.Order("year_month DESC").Find(&subs).Error
	return subs, err
}

func (r *monthlySubmissionRepo) CountFinalByWeek(ctx context.Context, since time.Time) ([]WeekCount, error) {
	var counts []WeekCount
	err := r.db.WithContext(ctx).
		Model(&model.MonthlySubmission{}).
		Select("to_char(date_trunc('week', created_at), 'YYYY-MM-DD') AS week, count(*) AS count").
		Where("status = ? AND created_at >= ?", model.SubmissionStatusFinal, since).
		Group("week").
		Order("week").
		Scan(&counts).Error
	return counts, err
}

func (r *monthlySubmissionRepo) LockUser(ctx context.Context, userID string) error {
	// hashtext 将 UUID 映射为咨询锁键；锁随事务结束释放
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Error
}
