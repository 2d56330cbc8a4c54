package model

// 月度提交状态
// 状态只允许 DRAFT → FINAL 单向迁移，FINAL 为该月终态
const (
	SubmissionStatusDraft = "DRAFT"
	SubmissionStatusFinal = "FINAL"
)

// MonthlySubmission 月度提交表 — 对应 monthly_submissions
// (user_id, year_month) 唯一；终稿通过 previous_submission_id
// 指向该用户上一条终稿，构成按时间单向回溯的链
type MonthlySubmission struct {
	SubmissionID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	UserID               string  `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_submissions_user_month" json:"user_id"`
	YearMonth            string  `gorm:"type:varchar(7);not null;uniqueIndex:uq_monthly_submissions_user_month" json:"year_month"`
	Data                 JSONMap `gorm:"type:jsonb"                                     json:"data"`
	Status               string  `gorm:"type:varchar(10);not null;default:'DRAFT'"      json:"status"`
	Diff                 JSONMap `gorm:"type:jsonb"                                     json:"diff,omitempty"`
	PreviousSubmissionID *string `gorm:"type:uuid"                                      json:"previous_submission_id,omitempty"`
	CreatedBy            *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (MonthlySubmission) TableName() string { return "monthly_submissions" }

// IsFinal 判断是否已定稿
func (s *MonthlySubmission) IsFinal() bool { return s.Status == SubmissionStatusFinal }
