package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// OTPRepository 验证码数据访问接口
type OTPRepository interface {
	Create(ctx context.Context, otp *model.OTP) error
	// GetLatestValid 取指定手机号最新一条未使用且未过期的验证码
	GetLatestValid(ctx context.Context, phone, code string, now time.Time) (*model.OTP, error)
	MarkVerified(ctx context.Context, otpID string) error
	// DeleteExpiredBefore 清理过期验证码（运维用）
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type otpRepo struct {
	db *gorm.DB
}

// NewOTPRepo 创建 OTPRepository 实例
func NewOTPRepo(db *gorm.DB) OTPRepository {
	return &otpRepo{db: db}
}

func (r *otpRepo) Create(ctx context.Context, otp *model.OTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *otpRepo) GetLatestValid(ctx context.Context, phone, code string, now time.Time) (*model.OTP, error) {
	var otp model.OTP
	err := r.db.WithContext(ctx).
		Where("phone = ? AND code = ? AND verified = ? AND expires_at >= ?", phone, code, false, now).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepo) MarkVerified(ctx context.Context, otpID string) error {
	return r.db.WithContext(ctx).
		Model(&model.OTP{}).
		Where("otp_id = ?", otpID).
		Update("verified", true).Error
}

func (r *otpRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&model.OTP{})
	return res.RowsAffected, res.Error
}
