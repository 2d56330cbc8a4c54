package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"staff-form/backend/internal/dto"
)

// ═══════════════════════════════════════════════════════════
// Test: ExportRoster
// ═══════════════════════════════════════════════════════════

func TestExportRoster_EmptyRejected(t *testing.T) {
	svc := NewExportService(newTestRepo(), zap.NewNop())

	_, _, err := svc.ExportRoster(context.Background(), &dto.DashboardRequest{})
	if !errors.Is(err, ErrExportNoUsers) {
		t.Fatalf("空花名册期望 ErrExportNoUsers, got: %v", err)
	}
}

func TestExportRoster_GeneratesWorkbook(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	ctx := context.Background()

	seedDashboardUser(t, repo, "+2348011111111", "Ada", "FEMALE", "Lagos GPO", "GL08", true)
	seedDashboardUser(t, repo, "+2348022222222", "Bello", "MALE", "Abuja GPO", "GL07", false)

	buf, filename, err := svc.ExportRoster(ctx, &dto.DashboardRequest{})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasPrefix(filename, "staff-roster-") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不匹配: %s", filename)
	}

	// 回读校验工作簿内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("读取导出内容失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("读取 Roster Sheet 失败: %v", err)
	}
	// 表头 + 两个用户
	if len(rows) != 3 {
		t.Fatalf("行数不匹配: %d", len(rows))
	}
	if rows[0][0] != "Phone" || rows[0][1] != "Name" {
		t.Errorf("表头不匹配: %v", rows[0])
	}

	var phones []string
	for _, row := range rows[1:] {
		phones = append(phones, row[0])
	}
	found := map[string]bool{}
	for _, p := range phones {
		found[p] = true
	}
	if !found["+2348011111111"] || !found["+2348022222222"] {
		t.Errorf("导出行缺失: %v", phones)
	}
}

func TestExportRoster_RespectsStationFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())

	seedDashboardUser(t, repo, "+2348011111111", "Ada", "FEMALE", "Lagos GPO", "GL08", true)
	seedDashboardUser(t, repo, "+2348022222222", "Bello", "MALE", "Abuja GPO", "GL07", false)

	buf, _, err := svc.ExportRoster(context.Background(), &dto.DashboardRequest{Station: "Lagos GPO"})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("读取导出内容失败: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Roster")
	if len(rows) != 2 {
		t.Fatalf("过滤后应只有 1 行数据: %d", len(rows)-1)
	}
	if rows[1][0] != "+2348011111111" {
		t.Errorf("过滤结果不匹配: %v", rows[1])
	}
}
