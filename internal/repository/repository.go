package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Tx                TxRunner
	User              UserRepository
	OTP               OTPRepository
	FormDraft         FormDraftRepository
	PersonalData      PersonalDataRepository
	Education         EducationRepository
	Employment        EmploymentRepository
	OtherData         OtherDataRepository
	Station           StationRepository
	SubmissionWindow  SubmissionWindowRepository
	MonthlySubmission MonthlySubmissionRepository
}

// TxRunner 在单个数据库事务中执行 fn
// fn 收到的聚合仓储绑定到同一事务；fn 返回错误时整体回滚。
// 定稿流程的"读上一条终稿 → 计算差异 → 写入新终稿"依赖该边界保证原子性。
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(txRepo *Repository) error) error
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	r := newRepositoryWithDB(db)
	r.Tx = &gormTxRunner{db: db}
	return r
}

// newRepositoryWithDB 构建绑定到指定 db（或事务）的聚合
func newRepositoryWithDB(db *gorm.DB) *Repository {
	return &Repository{
		User:              NewUserRepo(db),
		OTP:               NewOTPRepo(db),
		FormDraft:         NewFormDraftRepo(db),
		PersonalData:      NewPersonalDataRepo(db),
		Education:         NewEducationRepo(db),
		Employment:        NewEmploymentRepo(db),
		OtherData:         NewOtherDataRepo(db),
		Station:           NewStationRepo(db),
		SubmissionWindow:  NewSubmissionWindowRepo(db),
		MonthlySubmission: NewMonthlySubmissionRepo(db),
	}
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) RunInTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := newRepositoryWithDB(tx)
		txRepo.Tx = &nestedTxRunner{repo: txRepo}
		return fn(txRepo)
	})
}

// nestedTxRunner 事务内再次调用 RunInTx 时直接复用当前事务
type nestedTxRunner struct {
	repo *Repository
}

func (r *nestedTxRunner) RunInTx(_ context.Context, fn func(txRepo *Repository) error) error {
	return fn(r.repo)
}
