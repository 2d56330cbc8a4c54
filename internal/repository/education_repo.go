package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// EducationRepository 教育经历数据访问接口
type EducationRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.EducationHistory, error)
	// ReplaceByUserID 在事务中全量替换教育经历：更新主记录并重建附加学历
	ReplaceByUserID(ctx context.Context, edu *model.EducationHistory, quals []model.AdditionalQualification) error
	// AppendQualifications 追加附加学历（定稿落库的规范化副作用）
	AppendQualifications(ctx context.Context, userID string, quals []model.AdditionalQualification) error
}

type educationRepo struct {
	db *gorm.DB
}

// NewEducationRepo 创建 EducationRepository 实例
func NewEducationRepo(db *gorm.DB) EducationRepository {
	return &educationRepo{db: db}
}

func (r *educationRepo) GetByUserID(ctx context.Context, userID string) (*model.EducationHistory, error) {
	var edu model.EducationHistory
	err := r.db.WithContext(ctx).
		Preload("AdditionalQualifications").
		Where("user_id = ?", userID).
		First(&edu).Error
	if err != nil {
		return nil, err
	}
	return &edu, nil
}

func (r *educationRepo) ReplaceByUserID(ctx context.Context, edu *model.EducationHistory, quals []model.AdditionalQualification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.EducationHistory
		err := tx.Where("user_id = ?", edu.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(edu).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			edu.EducationID = existing.EducationID
			edu.CreatedAt = existing.CreatedAt
			if err := tx.Save(edu).Error; err != nil {
				return err
			}
			// 全量替换附加学历
			if err := tx.Where("education_id = ?", edu.EducationID).
				Delete(&model.AdditionalQualification{}).Error; err != nil {
				return err
			}
		}

		if len(quals) == 0 {
			return nil
		}
		for i := range quals {
			quals[i].EducationID = edu.EducationID
		}
		return tx.Create(&quals).Error
	})
}

func (r *educationRepo) AppendQualifications(ctx context.Context, userID string, quals []model.AdditionalQualification) error {
	if len(quals) == 0 {
		return nil
	}
	var edu model.EducationHistory
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&edu).Error; err != nil {
		return err
	}
	for i := range quals {
		quals[i].EducationID = edu.EducationID
	}
	return r.db.WithContext(ctx).Create(&quals).Error
}
