package model

import "time"

// SubmissionWindow 月度提交窗口表 — 对应 submission_windows
// 每个月份（YYYY-MM）至多一条记录；记录缺失视为窗口关闭
type SubmissionWindow struct {
	YearMonth string     `gorm:"type:varchar(7);primaryKey" json:"year_month"`
	IsOpen    bool       `gorm:"not null;default:false"     json:"is_open"`
	Note      *string    `gorm:"type:text"                  json:"note,omitempty"`
	OpenAt    *time.Time `json:"open_at,omitempty"`
	CloseAt   *time.Time `json:"close_at,omitempty"`
	OpenedBy  *string    `gorm:"type:varchar(100)"          json:"opened_by,omitempty"`
	ClosedBy  *string    `gorm:"type:varchar(100)"          json:"closed_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SubmissionWindow) TableName() string { return "submission_windows" }
