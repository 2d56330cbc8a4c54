package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// SubmissionWindowService 提交窗口业务接口
//
// 每个月份至多一条窗口记录；窗口缺失等同关闭。
// 只有管理员的显式 Set 调用可以改变开关状态。
type SubmissionWindowService interface {
	Get(ctx context.Context, yearMonth string) (*dto.WindowResponse, error)
	List(ctx context.Context) ([]dto.WindowResponse, error)
	Set(ctx context.Context, req *dto.SetWindowRequest, callerID string) (*dto.WindowResponse, error)
	// ExportCalendar 将窗口开放区间导出为 iCalendar 订阅内容
	ExportCalendar(ctx context.Context) (string, error)
}

type submissionWindowService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionWindowService 创建 SubmissionWindowService 实例
func NewSubmissionWindowService(repo *repository.Repository, logger *zap.Logger) SubmissionWindowService {
	return &submissionWindowService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *submissionWindowService) Get(ctx context.Context, yearMonth string) (*dto.WindowResponse, error) {
	if !yearMonthPattern.MatchString(yearMonth) {
		return nil, ErrYearMonthInvalid
	}

	win, err := s.repo.SubmissionWindow.Get(ctx, yearMonth)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 窗口缺失视为关闭，返回合成的关闭态而非 404
			return &dto.WindowResponse{YearMonth: yearMonth, IsOpen: false}, nil
		}
		s.logger.Error("查询提交窗口失败", zap.String("year_month", yearMonth), zap.Error(err))
		return nil, err
	}
	return toWindowResponse(win), nil
}

// ────────────────────── List ──────────────────────

func (s *submissionWindowService) List(ctx context.Context) ([]dto.WindowResponse, error) {
	wins, err := s.repo.SubmissionWindow.List(ctx)
	if err != nil {
		s.logger.Error("查询窗口列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.WindowResponse, 0, len(wins))
	for i := range wins {
		resp = append(resp, *toWindowResponse(&wins[i]))
	}
	return resp, nil
}

// ────────────────────── Set ──────────────────────

// Set 按月份 upsert 窗口状态
// 开启时盖 OpenAt/OpenedBy，关闭时盖 CloseAt/ClosedBy；
// 请求未携带 note 时保留既有备注。
func (s *submissionWindowService) Set(ctx context.Context, req *dto.SetWindowRequest, callerID string) (*dto.WindowResponse, error) {
	if !yearMonthPattern.MatchString(req.YearMonth) {
		return nil, ErrYearMonthInvalid
	}

	now := time.Now()

	win, err := s.repo.SubmissionWindow.Get(ctx, req.YearMonth)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		win = &model.SubmissionWindow{YearMonth: req.YearMonth}
		s.stamp(win, req, callerID, now)
		if err := s.repo.SubmissionWindow.Create(ctx, win); err != nil {
			s.logger.Error("创建提交窗口失败", zap.String("year_month", req.YearMonth), zap.Error(err))
			return nil, err
		}
	case err != nil:
		s.logger.Error("查询提交窗口失败", zap.String("year_month", req.YearMonth), zap.Error(err))
		return nil, err
	default:
		s.stamp(win, req, callerID, now)
		if err := s.repo.SubmissionWindow.Update(ctx, win); err != nil {
			s.logger.Error("更新提交窗口失败", zap.String("year_month", req.YearMonth), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("提交窗口已更新",
		zap.String("year_month", req.YearMonth),
		zap.Bool("is_open", req.IsOpen),
		zap.String("caller", callerID))

	return toWindowResponse(win), nil
}

func (s *submissionWindowService) stamp(win *model.SubmissionWindow, req *dto.SetWindowRequest, callerID string, now time.Time) {
	win.IsOpen = req.IsOpen
	if req.Note != nil {
		win.Note = req.Note
	}
	if req.IsOpen {
		win.OpenAt = &now
		win.OpenedBy = &callerID
	} else {
		win.CloseAt = &now
		win.ClosedBy = &callerID
	}
}

// ────────────────────── ExportCalendar ──────────────────────

func (s *submissionWindowService) ExportCalendar(ctx context.Context) (string, error) {
	wins, err := s.repo.SubmissionWindow.List(ctx)
	if err != nil {
		s.logger.Error("导出窗口日历失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//staff-form//submission-windows//EN")
	cal.SetName("Staff Submission Windows")

	for i := range wins {
		win := &wins[i]
		start, err := time.Parse("2006-01", win.YearMonth)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("window-%s@staff-form", win.YearMonth))
		event.SetSummary(fmt.Sprintf("Submission window %s", win.YearMonth))
		// 窗口覆盖整个自然月，按全天事件导出
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 1, 0))
		if win.Note != nil && *win.Note != "" {
			event.SetDescription(*win.Note)
		}
		if win.IsOpen {
			event.SetStatus(ics.ObjectStatusConfirmed)
		} else {
			event.SetStatus(ics.ObjectStatusCancelled)
		}
		if win.OpenAt != nil {
			event.SetCreatedTime(*win.OpenAt)
		}
		event.SetDtStampTime(win.UpdatedAt)
	}

	return cal.Serialize(), nil
}

func toWindowResponse(win *model.SubmissionWindow) *dto.WindowResponse {
	resp := &dto.WindowResponse{
		YearMonth: win.YearMonth,
		IsOpen:    win.IsOpen,
	}
	if win.Note != nil {
		resp.Note = *win.Note
	}
	if win.OpenAt != nil {
		resp.OpenAt = win.OpenAt.Format(time.RFC3339)
	}
	if win.CloseAt != nil {
		resp.CloseAt = win.CloseAt.Format(time.RFC3339)
	}
	if win.OpenedBy != nil {
		resp.OpenedBy = *win.OpenedBy
	}
	if win.ClosedBy != nil {
		resp.ClosedBy = *win.ClosedBy
	}
	return resp
}
