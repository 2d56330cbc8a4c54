package model

// FormDraft 表单草稿表 — 对应 form_drafts
// 注册流程中按 (phone, page) 暂存表单内容，中断后可恢复。
// 与月度提交的 DRAFT 状态无关：这里只是注册向导的临时暂存。
type FormDraft struct {
	DraftID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"draft_id"`
	Phone   string  `gorm:"type:varchar(20);not null;uniqueIndex:uq_form_drafts_phone_page" json:"phone"`
	Page    string  `gorm:"type:varchar(30);not null;uniqueIndex:uq_form_drafts_phone_page" json:"page"`
	Data    JSONMap `gorm:"type:jsonb" json:"data"`
	BaseModel
}

// TableName 指定表名
func (FormDraft) TableName() string { return "form_drafts" }
