package model

// Station 标准邮政网点表 — 对应 stations
// 雇佣信息中的 standard_station_id 指向此表，网点名称自由文本另存
type Station struct {
	StationID int    `gorm:"primaryKey;autoIncrement"                      json:"station_id"`
	Name      string `gorm:"type:varchar(200);not null;uniqueIndex"        json:"name"`
	Type      string `gorm:"type:varchar(50);not null;default:'post_office'" json:"type"`
	BaseModel
}

// TableName 指定表名
func (Station) TableName() string { return "stations" }
