package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// 走势图默认回看周数
const dashboardWeeksBack = 12

// DashboardService 管理面板业务接口
type DashboardService interface {
	Overview(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger, now: time.Now}
}

// Overview 聚合花名册、过滤项和各维度计数
func (s *dashboardService) Overview(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	users, err := s.repo.User.ListWithDetails(ctx, req.Station, req.Grade, req.GetLimit())
	if err != nil {
		s.logger.Error("查询花名册失败", zap.Error(err))
		return nil, err
	}

	stations, err := s.repo.Employment.DistinctStations(ctx)
	if err != nil {
		s.logger.Error("查询网点列表失败", zap.Error(err))
		return nil, err
	}
	grades, err := s.repo.Employment.DistinctGradeLevels(ctx)
	if err != nil {
		s.logger.Error("查询职级列表失败", zap.Error(err))
		return nil, err
	}

	now := s.now()
	resp := &dto.DashboardResponse{
		Users:       make([]dto.DashboardUserRow, 0, len(users)),
		Stations:    stations,
		GradeLevels: grades,
		Total:       len(users),
	}

	byStation := make(map[string]int)
	byGrade := make(map[string]int)
	byGender := make(map[string]int)

	for i := range users {
		u := &users[i]
		row := toDashboardRow(u, now)
		resp.Users = append(resp.Users, row)

		if u.Done {
			resp.Completed++
		} else {
			resp.Incomplete++
		}
		if row.Station != "" {
			byStation[row.Station]++
		}
		if row.GradeLevel != "" {
			byGrade[row.GradeLevel]++
		}
		if row.Gender != "" {
			byGender[row.Gender]++
		}
	}

	resp.CountsByStation = toKeyCounts(byStation)
	resp.CountsByGrade = toKeyCounts(byGrade)
	resp.GenderCounts = toKeyCounts(byGender)

	since := now.AddDate(0, 0, -7*dashboardWeeksBack)
	weekly, err := s.repo.MonthlySubmission.CountFinalByWeek(ctx, since)
	if err != nil {
		s.logger.Error("统计每周终稿失败", zap.Error(err))
		return nil, err
	}
	resp.WeeklySubmissions = make([]dto.KeyCount, 0, len(weekly))
	for _, w := range weekly {
		resp.WeeklySubmissions = append(resp.WeeklySubmissions, dto.KeyCount{Key: w.Week, Value: w.Count})
	}

	return resp, nil
}

func toDashboardRow(u *model.User, now time.Time) dto.DashboardUserRow {
	row := dto.DashboardUserRow{
		ID:        u.UserID,
		Done:      u.Done,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}

	var dob *time.Time
	if pd := u.PersonalData; pd != nil {
		name := ""
		if pd.FirstName != nil {
			name = *pd.FirstName
		}
		if pd.LastName != nil {
			if name != "" {
				name += " "
			}
			name += *pd.LastName
		}
		row.Name = name
		if pd.Gender != nil {
			row.Gender = *pd.Gender
		}
		dob = pd.DOB
	}

	var firstAppointed *time.Time
	if emp := u.EmploymentData; emp != nil {
		if emp.Rank != nil {
			row.Rank = *emp.Rank
		}
		if emp.GradeLevel != nil {
			row.GradeLevel = *emp.GradeLevel
		}
		if emp.PresentStation != nil {
			row.Station = *emp.PresentStation
		}
		firstAppointed = emp.DateFirstAppointed
	}

	row.RetirementLeft = FormatTimeUntil(RetirementDate(dob, firstAppointed), now)
	return row
}

func toKeyCounts(m map[string]int) []dto.KeyCount {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.KeyCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, dto.KeyCount{Key: k, Value: m[k]})
	}
	return out
}
