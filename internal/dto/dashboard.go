package dto

// DashboardRequest 管理面板查询参数
type DashboardRequest struct {
	Station string `form:"station"`
	Grade   string `form:"grade"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=5000"`
}

// GetLimit 获取返回上限（默认 1000）
func (r *DashboardRequest) GetLimit() int {
	if r.Limit <= 0 {
		return 1000
	}
	return r.Limit
}

// DashboardUserRow 管理面板用户行
type DashboardUserRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Gender         string `json:"gender"`
	Rank           string `json:"rank"`
	GradeLevel     string `json:"grade_level"`
	Station        string `json:"station"`
	Done           bool   `json:"done"`
	RetirementLeft string `json:"retirement_left"`
	CreatedAt      string `json:"created_at"`
}

// KeyCount 通用分组计数
type KeyCount struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// DashboardResponse 管理面板响应
type DashboardResponse struct {
	Users             []DashboardUserRow `json:"users"`
	Stations          []string           `json:"stations"`
	GradeLevels       []string           `json:"grade_levels"`
	Total             int                `json:"total"`
	Completed         int                `json:"completed"`
	Incomplete        int                `json:"incomplete"`
	CountsByStation   []KeyCount         `json:"counts_by_station"`
	CountsByGrade     []KeyCount         `json:"counts_by_grade"`
	GenderCounts      []KeyCount         `json:"gender_counts"`
	WeeklySubmissions []KeyCount         `json:"weekly_submissions"`
}

// ── 用户管理 ──

// CompletedUserRow 已完成注册用户行
type CompletedUserRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	ID   string `json:"id"   binding:"required,uuid"`
	Role string `json:"role" binding:"required,oneof=staff admin"`
}
