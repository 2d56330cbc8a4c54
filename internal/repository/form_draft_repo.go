package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staff-form/backend/internal/model"
)

// FormDraftRepository 表单草稿数据访问接口
type FormDraftRepository interface {
	// Upsert 按 (phone, page) 创建或覆盖草稿
	Upsert(ctx context.Context, draft *model.FormDraft) error
	Get(ctx context.Context, phone, page string) (*model.FormDraft, error)
	DeleteByPhone(ctx context.Context, phone string) error
}

type formDraftRepo struct {
	db *gorm.DB
}

// NewFormDraftRepo 创建 FormDraftRepository 实例
func NewFormDraftRepo(db *gorm.DB) FormDraftRepository {
	return &formDraftRepo{db: db}
}

func (r *formDraftRepo) Upsert(ctx context.Context, draft *model.FormDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}, {Name: "page"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(draft).Error
}

func (r *formDraftRepo) Get(ctx context.Context, phone, page string) (*model.FormDraft, error) {
	var draft model.FormDraft
	err := r.db.WithContext(ctx).
		Where("phone = ? AND page = ?", phone, page).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *formDraftRepo) DeleteByPhone(ctx context.Context, phone string) error {
	// 注册完成后清理草稿，硬删除即可
	return r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Delete(&model.FormDraft{}).Error
}
