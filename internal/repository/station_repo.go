package repository

import (
	"context"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
)

// StationRepository 标准网点数据访问接口
type StationRepository interface {
	List(ctx context.Context) ([]model.Station, error)
	GetByID(ctx context.Context, id int) (*model.Station, error)
}

type stationRepo struct {
	db *gorm.DB
}

// NewStationRepo 创建 StationRepository 实例
func NewStationRepo(db *gorm.DB) StationRepository {
	return &stationRepo{db: db}
}

func (r *stationRepo) List(ctx context.Context) ([]model.Station, error) {
	var stations []model.Station
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stations).Error
	return stations, err
}

func (r *stationRepo) GetByID(ctx context.Context, id int) (*model.Station, error) {
	var station model.Station
	err := r.db.WithContext(ctx).Where("station_id = ?", id).First(&station).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}
