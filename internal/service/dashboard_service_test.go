package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

func seedDashboardUser(t *testing.T, repo *repository.Repository, phone, first, gender, station, grade string, done bool) *model.User {
	t.Helper()
	ctx := context.Background()

	user := &model.User{Phone: phone, Role: model.RoleStaff, PhoneVerified: true, Done: done}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}

	dob := time.Date(1975, time.May, 2, 0, 0, 0, 0, time.UTC)
	user.PersonalData = &model.PersonalData{
		UserID:    user.UserID,
		FirstName: &first,
		Gender:    &gender,
		DOB:       &dob,
	}

	appointed := time.Date(2000, time.January, 10, 0, 0, 0, 0, time.UTC)
	user.EmploymentData = &model.EmploymentData{
		UserID:             user.UserID,
		PresentStation:     &station,
		GradeLevel:         &grade,
		DateFirstAppointed: &appointed,
	}
	if err := repo.Employment.ReplaceByUserID(ctx, user.EmploymentData, nil, nil, nil); err != nil {
		t.Fatalf("预置雇佣信息失败: %v", err)
	}
	return user
}

// ═══════════════════════════════════════════════════════════
// Test: Overview
// ═══════════════════════════════════════════════════════════

func TestDashboardOverview_CountsAndFilters(t *testing.T) {
	repo := newTestRepo()
	svc := NewDashboardService(repo, zap.NewNop())
	ctx := context.Background()

	seedDashboardUser(t, repo, "+2348011111111", "Ada", "FEMALE", "Lagos GPO", "GL08", true)
	seedDashboardUser(t, repo, "+2348022222222", "Bello", "MALE", "Lagos GPO", "GL07", false)
	seedDashboardUser(t, repo, "+2348033333333", "Chika", "FEMALE", "Abuja GPO", "GL08", true)

	resp, err := svc.Overview(ctx, &dto.DashboardRequest{})
	if err != nil {
		t.Fatalf("查询面板失败: %v", err)
	}

	if resp.Total != 3 || resp.Completed != 2 || resp.Incomplete != 1 {
		t.Errorf("完成度统计不匹配: total=%d completed=%d incomplete=%d",
			resp.Total, resp.Completed, resp.Incomplete)
	}
	if len(resp.Stations) != 2 || len(resp.GradeLevels) != 2 {
		t.Errorf("过滤项不匹配: stations=%v grades=%v", resp.Stations, resp.GradeLevels)
	}

	wantStation := map[string]int{"Abuja GPO": 1, "Lagos GPO": 2}
	for _, kc := range resp.CountsByStation {
		if wantStation[kc.Key] != kc.Value {
			t.Errorf("网点计数不匹配: %s=%d", kc.Key, kc.Value)
		}
	}
	wantGender := map[string]int{"FEMALE": 2, "MALE": 1}
	for _, kc := range resp.GenderCounts {
		if wantGender[kc.Key] != kc.Value {
			t.Errorf("性别计数不匹配: %s=%d", kc.Key, kc.Value)
		}
	}

	// 每行应带退休倒计时（1975 年生 + 2000 年入职 → 2035 年服务年限先到）
	for _, row := range resp.Users {
		if row.RetirementLeft == "" {
			t.Errorf("退休倒计时缺失: %+v", row)
		}
	}
}

func TestDashboardOverview_StationFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewDashboardService(repo, zap.NewNop())

	u1 := seedDashboardUser(t, repo, "+2348011111111", "Ada", "FEMALE", "Lagos GPO", "GL08", true)
	seedDashboardUser(t, repo, "+2348033333333", "Chika", "FEMALE", "Abuja GPO", "GL08", true)

	resp, err := svc.Overview(context.Background(), &dto.DashboardRequest{Station: "Lagos GPO"})
	if err != nil {
		t.Fatalf("查询面板失败: %v", err)
	}
	if resp.Total != 1 || resp.Users[0].ID != u1.UserID {
		t.Errorf("网点过滤不匹配: %+v", resp.Users)
	}
}

func TestDashboardOverview_WeeklyFinalCounts(t *testing.T) {
	repo := newTestRepo()
	svc := NewDashboardService(repo, zap.NewNop())
	ctx := context.Background()

	user := seedDashboardUser(t, repo, "+2348011111111", "Ada", "FEMALE", "Lagos GPO", "GL08", true)
	for i, ym := range []string{"2026-06", "2026-07"} {
		sub := &model.MonthlySubmission{
			UserID:    user.UserID,
			YearMonth: ym,
			Data:      model.JSONMap{"i": float64(i)},
			Status:    model.SubmissionStatusFinal,
		}
		if err := repo.MonthlySubmission.Create(ctx, sub); err != nil {
			t.Fatalf("预置终稿失败: %v", err)
		}
	}
	draft := &model.MonthlySubmission{
		UserID:    user.UserID,
		YearMonth: "2026-08",
		Status:    model.SubmissionStatusDraft,
	}
	if err := repo.MonthlySubmission.Create(ctx, draft); err != nil {
		t.Fatalf("预置草稿失败: %v", err)
	}

	resp, err := svc.Overview(ctx, &dto.DashboardRequest{})
	if err != nil {
		t.Fatalf("查询面板失败: %v", err)
	}

	// mock 的 CreatedAt 都落在当周，同一周聚合成一条且只数终稿
	var total int
	for _, kc := range resp.WeeklySubmissions {
		total += kc.Value
	}
	if total != 2 {
		t.Errorf("每周终稿总数不匹配: %d (%+v)", total, resp.WeeklySubmissions)
	}
}
