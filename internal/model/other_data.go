package model

// OtherData 其他资料表 — 对应 other_data（每用户一条）
// Content 存放证书条目列表：{title, dateIssued, skills, fileName}
type OtherData struct {
	OtherDataID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"other_data_id"`
	UserID      string   `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	Content     JSONList `gorm:"type:jsonb"                                     json:"content"`
	BaseModel
}

// TableName 指定表名
func (OtherData) TableName() string { return "other_data" }
