package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staff-form/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	// GetByPhoneWithDetails 联表加载个人/雇佣/教育等全部资料
	GetByPhoneWithDetails(ctx context.Context, phone string) (*model.User, error)
	// UpsertByPhone 按手机号创建或更新（OTP 验证通过、补充邮箱等场景）
	UpsertByPhone(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	MarkPhoneVerified(ctx context.Context, phone string) error
	MarkDone(ctx context.Context, userID string) error
	UpdateRole(ctx context.Context, userID, role string) error
	// ListWithDetails 列出用户及其关联资料（管理面板）
	ListWithDetails(ctx context.Context, station, grade string, limit int) ([]model.User, error)
	ListCompleted(ctx context.Context) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByPhoneWithDetails(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("PersonalData").
		Preload("EducationHistory").
		Preload("EducationHistory.AdditionalQualifications").
		Preload("EmploymentData").
		Preload("EmploymentData.PreviousStations").
		Preload("EmploymentData.PreviousJobsHandled").
		Preload("EmploymentData.PreviousPromotions").
		Preload("OtherData").
		Where("phone = ?", phone).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpsertByPhone(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "phone_verified", "updated_at"}),
		}).
		Create(user).Error
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) MarkPhoneVerified(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("phone = ?", phone).
		Update("phone_verified", true).Error
}

func (r *userRepo) MarkDone(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("done", true).Error
}

func (r *userRepo) UpdateRole(ctx context.Context, userID, role string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) ListWithDetails(ctx context.Context, station, grade string, limit int) ([]model.User, error) {
	q := r.db.WithContext(ctx).
		Preload("PersonalData").
		Preload("EmploymentData").
		Preload("EmploymentData.StandardStation").
		Order("created_at DESC").
		Limit(limit)

	// 网点/职级过滤需要联 employment_data
	if station != "" || grade != "" {
		q = q.Joins("JOIN employment_data ed ON ed.user_id = users.user_id")
		if station != "" {
			q = q.Where("ed.present_station = ?", station)
		}
		if grade != "" {
			q = q.Where("ed.grade_level = ?", grade)
		}
	}

	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ListCompleted(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("PersonalData").
		Where("done = ?", true).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}
