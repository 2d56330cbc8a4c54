package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// EmploymentRepository 雇佣信息数据访问接口
type EmploymentRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.EmploymentData, error)
	// ReplaceByUserID 在事务中全量替换雇佣信息：更新主记录并重建历史网点/岗位/晋升
	ReplaceByUserID(ctx context.Context, emp *model.EmploymentData,
		stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error
	// AppendHistory 追加历史记录（定稿落库的规范化副作用）
	AppendHistory(ctx context.Context, userID string,
		stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error
	// DistinctStations 所有在职网点（去重，管理面板过滤项）
	DistinctStations(ctx context.Context) ([]string, error)
	// DistinctGradeLevels 所有职级（去重，管理面板过滤项）
	DistinctGradeLevels(ctx context.Context) ([]string, error)
}

type employmentRepo struct {
	db *gorm.DB
}

// NewEmploymentRepo 创建 EmploymentRepository 实例
func NewEmploymentRepo(db *gorm.DB) EmploymentRepository {
	return &employmentRepo{db: db}
}

func (r *employmentRepo) GetByUserID(ctx context.Context, userID string) (*model.EmploymentData, error) {
	var emp model.EmploymentData
	err := r.db.WithContext(ctx).
		Preload("PreviousStations").
		Preload("PreviousJobsHandled").
		Preload("PreviousPromotions").
		Where("user_id = ?", userID).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employmentRepo) ReplaceByUserID(ctx context.Context, emp *model.EmploymentData,
	stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.EmploymentData
		err := tx.Where("user_id = ?", emp.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(emp).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			emp.EmploymentID = existing.EmploymentID
			emp.CreatedAt = existing.CreatedAt
			if err := tx.Save(emp).Error; err != nil {
				return err
			}
			// 全量替换历史子表
			if err := tx.Where("employment_id = ?", emp.EmploymentID).
				Delete(&model.PreviousStation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("employment_id = ?", emp.EmploymentID).
				Delete(&model.PreviousJob{}).Error; err != nil {
				return err
			}
			if err := tx.Where("employment_id = ?", emp.EmploymentID).
				Delete(&model.PreviousPromotion{}).Error; err != nil {
				return err
			}
		}

		return createHistory(tx, emp.EmploymentID, stations, jobs, promotions)
	})
}

func (r *employmentRepo) AppendHistory(ctx context.Context, userID string,
	stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error {
	if len(stations) == 0 && len(jobs) == 0 && len(promotions) == 0 {
		return nil
	}
	var emp model.EmploymentData
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&emp).Error; err != nil {
		return err
	}
	return createHistory(r.db.WithContext(ctx), emp.EmploymentID, stations, jobs, promotions)
}

func createHistory(tx *gorm.DB, employmentID string,
	stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error {
	if len(stations) > 0 {
		for i := range stations {
			stations[i].EmploymentID = employmentID
		}
		if err := tx.Create(&stations).Error; err != nil {
			return err
		}
	}
	if len(jobs) > 0 {
		for i := range jobs {
			jobs[i].EmploymentID = employmentID
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return err
		}
	}
	if len(promotions) > 0 {
		for i := range promotions {
			promotions[i].EmploymentID = employmentID
		}
		if err := tx.Create(&promotions).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *employmentRepo) DistinctStations(ctx context.Context) ([]string, error) {
	var stations []string
	err := r.db.WithContext(ctx).
		Model(&model.EmploymentData{}).
		Where("present_station IS NOT NULL AND present_station <> ''").
		Distinct("present_station").
		Order("present_station ASC").
		Pluck("present_station", &stations).Error
	return stations, err
}

func (r *employmentRepo) DistinctGradeLevels(ctx context.Context) ([]string, error) {
	var grades []string
	err := r.db.WithContext(ctx).
		Model(&model.EmploymentData{}).
		Where("grade_level IS NOT NULL AND grade_level <> ''").
		Distinct("grade_level").
		Order("grade_level ASC").
		Pluck("grade_level", &grades).Error
	return grades, err
}
