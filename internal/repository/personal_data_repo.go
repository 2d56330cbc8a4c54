package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// PersonalDataRepository 个人资料数据访问接口
type PersonalDataRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.PersonalData, error)
	// Upsert 按 user_id 创建或更新
	Upsert(ctx context.Context, data *model.PersonalData) error
}

type personalDataRepo struct {
	db *gorm.DB
}

// NewPersonalDataRepo 创建 PersonalDataRepository 实例
func NewPersonalDataRepo(db *gorm.DB) PersonalDataRepository {
	return &personalDataRepo{db: db}
}

func (r *personalDataRepo) GetByUserID(ctx context.Context, userID string) (*model.PersonalData, error) {
	var data model.PersonalData
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&data).Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *personalDataRepo) Upsert(ctx context.Context, data *model.PersonalData) error {
	var existing model.PersonalData
	err := r.db.WithContext(ctx).Where("user_id = ?", data.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(data).Error
	}
	if err != nil {
		return err
	}
	data.PersonalDataID = existing.PersonalDataID
	data.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(data).Error
}
