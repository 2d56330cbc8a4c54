package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoUsers      = errors.New("无符合条件的员工可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 花名册导出为 Excel (.xlsx)，支持与管理面板相同的网点/职级过滤
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出员工花名册为 Excel
	ExportRoster(ctx context.Context, req *dto.DashboardRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster — 导出花名册为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet "Roster"
//   表头: 手机号 | 姓名 | 性别 | 职级 | 职衔 | 网点 | 部门 | 入职日期 | 退休剩余 | 注册完成
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

var rosterHeaders = []string{
	"Phone", "Name", "Gender", "Grade Level", "Rank",
	"Station", "Department", "First Appointed", "Retirement Left", "Done",
}

func (s *exportService) ExportRoster(ctx context.Context, req *dto.DashboardRequest) (*bytes.Buffer, string, error) {
	users, err := s.repo.User.ListWithDetails(ctx, req.Station, req.Grade, req.GetLimit())
	if err != nil {
		s.logger.Error("查询花名册失败", zap.Error(err))
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrExportNoUsers
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Roster"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "J", 16)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for i, h := range rosterHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", h)
	}

	now := s.now()
	for i := range users {
		u := &users[i]
		values := rosterRow(u, now)
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, i+2), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("staff-roster-%s.xlsx", now.Format("2006-01-02"))
	return buf, filename, nil
}

func rosterRow(u *model.User, now time.Time) []interface{} {
	row := toDashboardRow(u, now)

	department := ""
	firstAppointed := ""
	if emp := u.EmploymentData; emp != nil {
		if emp.Department != nil {
			department = *emp.Department
		}
		if emp.DateFirstAppointed != nil {
			firstAppointed = emp.DateFirstAppointed.Format("2006-01-02")
		}
	}

	done := "No"
	if u.Done {
		done = "Yes"
	}

	return []interface{}{
		u.Phone, row.Name, row.Gender, row.GradeLevel, row.Rank,
		row.Station, department, firstAppointed, row.RetirementLeft, done,
	}
}
