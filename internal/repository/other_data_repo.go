package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staff-form/backend/internal/model"
)

// OtherDataRepository 其他资料数据访问接口
type OtherDataRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.OtherData, error)
	// Upsert 按 user_id 创建或覆盖证书列表
	Upsert(ctx context.Context, data *model.OtherData) error
}

type otherDataRepo struct {
	db *gorm.DB
}

// NewOtherDataRepo 创建 OtherDataRepository 实例
func NewOtherDataRepo(db *gorm.DB) OtherDataRepository {
	return &otherDataRepo{db: db}
}

func (r *otherDataRepo) GetByUserID(ctx context.Context, userID string) (*model.OtherData, error) {
	var data model.OtherData
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&data).Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *otherDataRepo) Upsert(ctx context.Context, data *model.OtherData) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(data).Error
}
