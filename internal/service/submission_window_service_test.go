package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"staff-form/backend/internal/dto"
)

func newWindowTestEnv() SubmissionWindowService {
	return NewSubmissionWindowService(newTestRepo(), zap.NewNop())
}

// ═══════════════════════════════════════════════════════════
// Test: Get
// ═══════════════════════════════════════════════════════════

func TestWindowGet_AbsentTreatedAsClosed(t *testing.T) {
	svc := newWindowTestEnv()

	resp, err := svc.Get(context.Background(), "2026-08")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if resp.IsOpen {
		t.Error("缺失窗口应视为关闭")
	}
	if resp.YearMonth != "2026-08" {
		t.Errorf("月份不匹配: %s", resp.YearMonth)
	}
}

func TestWindowGet_InvalidYearMonth(t *testing.T) {
	svc := newWindowTestEnv()

	_, err := svc.Get(context.Background(), "202608")
	if !errors.Is(err, ErrYearMonthInvalid) {
		t.Fatalf("期望 ErrYearMonthInvalid, got: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Set
// ═══════════════════════════════════════════════════════════

func TestWindowSet_OpenStampsActor(t *testing.T) {
	svc := newWindowTestEnv()
	note := "八月例行登记"

	resp, err := svc.Set(context.Background(), &dto.SetWindowRequest{
		YearMonth: "2026-08",
		IsOpen:    true,
		Note:      &note,
	}, "admin-1")
	if err != nil {
		t.Fatalf("开启窗口失败: %v", err)
	}
	if !resp.IsOpen {
		t.Error("期望窗口开启")
	}
	if resp.OpenedBy != "admin-1" {
		t.Errorf("OpenedBy 不匹配: %s", resp.OpenedBy)
	}
	if resp.OpenAt == "" {
		t.Error("开启应盖 OpenAt")
	}
	if resp.Note != note {
		t.Errorf("备注不匹配: %s", resp.Note)
	}
}

func TestWindowSet_ClosePreservesNote(t *testing.T) {
	svc := newWindowTestEnv()
	ctx := context.Background()
	note := "八月例行登记"

	if _, err := svc.Set(ctx, &dto.SetWindowRequest{
		YearMonth: "2026-08",
		IsOpen:    true,
		Note:      &note,
	}, "admin-1"); err != nil {
		t.Fatalf("开启窗口失败: %v", err)
	}

	// 关闭时不带 note，既有备注应保留
	resp, err := svc.Set(ctx, &dto.SetWindowRequest{
		YearMonth: "2026-08",
		IsOpen:    false,
	}, "admin-2")
	if err != nil {
		t.Fatalf("关闭窗口失败: %v", err)
	}
	if resp.IsOpen {
		t.Error("期望窗口关闭")
	}
	if resp.Note != note {
		t.Errorf("关闭不应清除备注: %q", resp.Note)
	}
	if resp.ClosedBy != "admin-2" {
		t.Errorf("ClosedBy 不匹配: %s", resp.ClosedBy)
	}
	// 开启时间戳不被关闭动作覆盖
	if resp.OpenAt == "" || resp.OpenedBy != "admin-1" {
		t.Errorf("关闭不应清除开启痕迹: open_at=%q opened_by=%q", resp.OpenAt, resp.OpenedBy)
	}
}

func TestWindowSet_UpsertSingleRecordPerMonth(t *testing.T) {
	svc := newWindowTestEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Set(ctx, &dto.SetWindowRequest{
			YearMonth: "2026-08",
			IsOpen:    i%2 == 0,
		}, "admin-1"); err != nil {
			t.Fatalf("第 %d 次设置失败: %v", i+1, err)
		}
	}

	wins, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("查询窗口列表失败: %v", err)
	}
	if len(wins) != 1 {
		t.Fatalf("同月应只有一条记录, got %d", len(wins))
	}
	if !wins[0].IsOpen {
		t.Error("末次设置为开启, 状态不匹配")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: ExportCalendar
// ═══════════════════════════════════════════════════════════

func TestWindowExportCalendar(t *testing.T) {
	svc := newWindowTestEnv()
	ctx := context.Background()
	note := "八月例行登记"

	if _, err := svc.Set(ctx, &dto.SetWindowRequest{
		YearMonth: "2026-08",
		IsOpen:    true,
		Note:      &note,
	}, "admin-1"); err != nil {
		t.Fatalf("开启窗口失败: %v", err)
	}
	if _, err := svc.Set(ctx, &dto.SetWindowRequest{
		YearMonth: "2026-07",
		IsOpen:    false,
	}, "admin-1"); err != nil {
		t.Fatalf("关闭窗口失败: %v", err)
	}

	content, err := svc.ExportCalendar(ctx)
	if err != nil {
		t.Fatalf("导出日历失败: %v", err)
	}

	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "END:VCALENDAR") {
		t.Error("输出不是合法的 iCalendar 外层结构")
	}
	if !strings.Contains(content, "window-2026-08@staff-form") {
		t.Error("缺少八月窗口事件")
	}
	if !strings.Contains(content, "window-2026-07@staff-form") {
		t.Error("缺少七月窗口事件")
	}
	if !strings.Contains(content, "STATUS:CONFIRMED") {
		t.Error("开启窗口应导出 CONFIRMED 状态")
	}
	if !strings.Contains(content, "STATUS:CANCELLED") {
		t.Error("关闭窗口应导出 CANCELLED 状态")
	}
}
