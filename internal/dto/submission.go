package dto

// 提交动作
const (
	SubmissionActionSave     = "save"
	SubmissionActionFinalize = "finalize"
)

// SubmitRequest 月度提交请求（暂存或定稿）
type SubmitRequest struct {
	Action    string                 `json:"action"     binding:"omitempty,oneof=save finalize"`
	YearMonth string                 `json:"year_month" binding:"required"`
	DataList  map[string]interface{} `json:"data_list"  binding:"required"`
}

// GetAction 获取动作（默认 save）
func (r *SubmitRequest) GetAction() string {
	if r.Action == "" {
		return SubmissionActionSave
	}
	return r.Action
}

// DiffSummary 差异统计
type DiffSummary struct {
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Removed int `json:"removed"`
}

// SubmitResponse 月度提交响应
// DiffSummary 仅在定稿时返回
type SubmitResponse struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	DiffSummary *DiffSummary `json:"diff_summary,omitempty"`
}

// ListSubmissionsRequest 查询提交记录请求
type ListSubmissionsRequest struct {
	YearMonth string `form:"year_month" binding:"required"`
	Status    string `form:"status"     binding:"omitempty,oneof=DRAFT FINAL"`
}

// SubmissionResponse 提交记录响应
type SubmissionResponse struct {
	ID                   string                 `json:"id"`
	YearMonth            string                 `json:"year_month"`
	Status               string                 `json:"status"`
	Data                 map[string]interface{} `json:"data"`
	Diff                 map[string]interface{} `json:"diff,omitempty"`
	PreviousSubmissionID string                 `json:"previous_submission_id,omitempty"`
	CreatedAt            string                 `json:"created_at"`
	UpdatedAt            string                 `json:"updated_at"`
}

// ── 提交窗口 ──

// SetWindowRequest 设置提交窗口请求（管理员）
type SetWindowRequest struct {
	YearMonth string  `json:"year_month" binding:"required"`
	IsOpen    bool    `json:"is_open"`
	Note      *string `json:"note"`
}

// WindowResponse 提交窗口响应
type WindowResponse struct {
	YearMonth string `json:"year_month"`
	IsOpen    bool   `json:"is_open"`
	Note      string `json:"note,omitempty"`
	OpenAt    string `json:"open_at,omitempty"`
	CloseAt   string `json:"close_at,omitempty"`
	OpenedBy  string `json:"opened_by,omitempty"`
	ClosedBy  string `json:"closed_by,omitempty"`
}
