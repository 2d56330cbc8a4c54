package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// ── 月度提交模块业务错误 ──

var (
	ErrSubmissionWindowClosed = errors.New("本月提交窗口未开放")
	ErrSubmissionFinalized    = errors.New("本月记录已定稿，不可修改")
	ErrSubmissionConflict     = errors.New("提交冲突，请重试")
	ErrYearMonthInvalid       = errors.New("月份格式无效，应为 YYYY-MM")
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// SubmissionService 月度提交业务接口
//
// 状态机：NONE → DRAFT → FINAL（当月终态）。
// save 在窗口开放时创建或覆盖草稿；finalize 以用户跨月份最新一条终稿为基线
// 计算结构化差异，原子地写入新终稿并链接前稿。
type SubmissionService interface {
	Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
	List(ctx context.Context, userID string, req *dto.ListSubmissionsRequest) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if !yearMonthPattern.MatchString(req.YearMonth) {
		return nil, ErrYearMonthInvalid
	}
	if err := s.requireOpenWindow(ctx, req.YearMonth); err != nil {
		return nil, err
	}

	switch req.GetAction() {
	case dto.SubmissionActionFinalize:
		return s.finalize(ctx, userID, req)
	default:
		return s.save(ctx, userID, req)
	}
}

// requireOpenWindow 窗口缺失或关闭一律拒绝
func (s *submissionService) requireOpenWindow(ctx context.Context, yearMonth string) error {
	win, err := s.repo.SubmissionWindow.Get(ctx, yearMonth)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionWindowClosed
		}
		s.logger.Error("查询提交窗口失败", zap.String("year_month", yearMonth), zap.Error(err))
		return err
	}
	if !win.IsOpen {
		return ErrSubmissionWindowClosed
	}
	return nil
}

// save 创建或覆盖当月草稿；已定稿的月份不可再改
func (s *submissionService) save(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	var sub *model.MonthlySubmission

	err := s.repo.Tx.RunInTx(ctx, func(txRepo *repository.Repository) error {
		existing, err := txRepo.MonthlySubmission.GetByUserAndMonth(ctx, userID, req.YearMonth)
		switch {
		case err == nil:
			if existing.IsFinal() {
				return ErrSubmissionFinalized
			}
			existing.Data = model.JSONMap(req.DataList)
			if err := txRepo.MonthlySubmission.Update(ctx, existing); err != nil {
				return err
			}
			sub = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := &model.MonthlySubmission{
				UserID:    userID,
				YearMonth: req.YearMonth,
				Data:      model.JSONMap(req.DataList),
				Status:    model.SubmissionStatusDraft,
				CreatedBy: &userID,
			}
			if err := txRepo.MonthlySubmission.Create(ctx, created); err != nil {
				return err
			}
			sub = created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubmissionConflict
		}
		if errors.Is(err, ErrSubmissionFinalized) {
			return nil, err
		}
		s.logger.Error("保存草稿失败",
			zap.String("user_id", userID),
			zap.String("year_month", req.YearMonth),
			zap.Error(err))
		return nil, err
	}

	return &dto.SubmitResponse{ID: sub.SubmissionID, Status: sub.Status}, nil
}

// finalize 定稿：读基线 → 计算差异 → 写终稿，整体在单个事务内完成。
// 事务内先对用户加咨询锁，串行化同一用户的并发定稿，避免两次定稿读到
// 同一基线造成链断裂。
func (s *submissionService) finalize(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	var (
		sub     *model.MonthlySubmission
		summary DiffSummary
	)

	err := s.repo.Tx.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.MonthlySubmission.LockUser(ctx, userID); err != nil {
			return err
		}

		existing, err := txRepo.MonthlySubmission.GetByUserAndMonth(ctx, userID, req.YearMonth)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.IsFinal() {
			return ErrSubmissionFinalized
		}

		// 基线是用户跨月份最新一条终稿，不限于上个月
		var baseline map[string]interface{}
		var previousID *string
		previous, err := txRepo.MonthlySubmission.GetLatestFinal(ctx, userID)
		if err == nil {
			baseline = previous.Data
			previousID = &previous.SubmissionID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		diff := ComputeDiff(baseline, req.DataList)
		summary = diff.Summary()

		if existing != nil {
			existing.Data = model.JSONMap(req.DataList)
			existing.Status = model.SubmissionStatusFinal
			existing.Diff = diff.ToJSONMap()
			existing.PreviousSubmissionID = previousID
			if err := txRepo.MonthlySubmission.Update(ctx, existing); err != nil {
				return err
			}
			sub = existing
		} else {
			created := &model.MonthlySubmission{
				UserID:               userID,
				YearMonth:            req.YearMonth,
				Data:                 model.JSONMap(req.DataList),
				Status:               model.SubmissionStatusFinal,
				Diff:                 diff.ToJSONMap(),
				PreviousSubmissionID: previousID,
				CreatedBy:            &userID,
			}
			if err := txRepo.MonthlySubmission.Create(ctx, created); err != nil {
				return err
			}
			sub = created
		}

		// 定稿后把载荷中的履历类条目落到规范化子表
		return s.applyNormalized(ctx, txRepo, userID, req.DataList)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubmissionConflict
		}
		if errors.Is(err, ErrSubmissionFinalized) {
			return nil, err
		}
		s.logger.Error("定稿失败",
			zap.String("user_id", userID),
			zap.String("year_month", req.YearMonth),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("月度记录已定稿",
		zap.String("user_id", userID),
		zap.String("year_month", req.YearMonth),
		zap.Int("added", summary.Added),
		zap.Int("changed", summary.Changed),
		zap.Int("removed", summary.Removed))

	return &dto.SubmitResponse{
		ID:     sub.SubmissionID,
		Status: sub.Status,
		DiffSummary: &dto.DiffSummary{
			Added:   summary.Added,
			Changed: summary.Changed,
			Removed: summary.Removed,
		},
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *submissionService) List(ctx context.Context, userID string, req *dto.ListSubmissionsRequest) ([]dto.SubmissionResponse, error) {
	if !yearMonthPattern.MatchString(req.YearMonth) {
		return nil, ErrYearMonthInvalid
	}

	subs, err := s.repo.MonthlySubmission.List(ctx, userID, req.YearMonth, req.Status)
	if err != nil {
		s.logger.Error("查询提交记录失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, *toSubmissionResponse(&subs[i]))
	}
	return resp, nil
}

func toSubmissionResponse(sub *model.MonthlySubmission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:        sub.SubmissionID,
		YearMonth: sub.YearMonth,
		Status:    sub.Status,
		Data:      sub.Data,
		Diff:      sub.Diff,
		CreatedAt: sub.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sub.UpdatedAt.Format(time.RFC3339),
	}
	if sub.PreviousSubmissionID != nil {
		resp.PreviousSubmissionID = *sub.PreviousSubmissionID
	}
	return resp
}

// ────────────────────── 规范化落库 ──────────────────────

// applyNormalized 定稿的附带动作：把载荷中的追加性条目写入规范化子表。
// 只追加、不回放整段历史；载荷缺少对应节、或用户尚未登记主记录时跳过。
func (s *submissionService) applyNormalized(ctx context.Context, txRepo *repository.Repository, userID string, payload map[string]interface{}) error {
	if quals := extractEntries(payload, "education", "additionalQualifications"); len(quals) > 0 {
		records := make([]model.AdditionalQualification, 0, len(quals))
		for _, q := range quals {
			qual := model.AdditionalQualification{
				Qualification: stringField(q, "qualification"),
				Institution:   stringField(q, "institution"),
				Type:          qualificationType(stringField(q, "type")),
			}
			if v := stringField(q, "startDate"); v != "" {
				qual.StartDate = &v
			}
			if v := stringField(q, "endDate"); v != "" {
				qual.EndDate = &v
			}
			records = append(records, qual)
		}
		err := txRepo.Education.AppendQualifications(ctx, userID, records)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	stations := toPrevStations(extractEntries(payload, "employment", "previousStations"))
	jobs := toPrevJobs(extractEntries(payload, "employment", "previousJobs"))
	promotions := toPrevPromotions(extractEntries(payload, "employment", "previousPromotions"))
	if len(stations) > 0 || len(jobs) > 0 || len(promotions) > 0 {
		err := txRepo.Employment.AppendHistory(ctx, userID, stations, jobs, promotions)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if content, ok := payload["others"].(map[string]interface{}); ok {
		if certs, ok := content["certificates"].([]interface{}); ok && len(certs) > 0 {
			list := make(model.JSONList, 0, len(certs))
			for _, c := range certs {
				if m, ok := c.(map[string]interface{}); ok {
					list = append(list, m)
				}
			}
			if err := txRepo.OtherData.Upsert(ctx, &model.OtherData{UserID: userID, Content: list}); err != nil {
				return err
			}
		}
	}

	return nil
}

// extractEntries 取 payload[section][field] 的对象数组
func extractEntries(payload map[string]interface{}, section, field string) []map[string]interface{} {
	sec, ok := payload[section].(map[string]interface{})
	if !ok {
		return nil
	}
	raw, ok := sec[field].([]interface{})
	if !ok {
		return nil
	}
	entries := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			entries = append(entries, m)
		}
	}
	return entries
}

// qualificationType 未识别的类型一律按附加学历处理
func qualificationType(t string) string {
	if t == model.QualificationTypeProfessional {
		return model.QualificationTypeProfessional
	}
	return model.QualificationTypeAdditional
}

func toPrevStations(entries []map[string]interface{}) []model.PreviousStation {
	out := make([]model.PreviousStation, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.PreviousStation{
			Station:        stringField(e, "station"),
			YearsInStation: stringField(e, "yearsInStation"),
		})
	}
	return out
}

func toPrevJobs(entries []map[string]interface{}) []model.PreviousJob {
	out := make([]model.PreviousJob, 0, len(entries))
	for _, e := range entries {
		job := model.PreviousJob{
			Job:        stringField(e, "job"),
			YearsInJob: stringField(e, "yearsInJob"),
		}
		if v := stringField(e, "jobDescription"); v != "" {
			job.JobDescription = &v
		}
		out = append(out, job)
	}
	return out
}

func toPrevPromotions(entries []map[string]interface{}) []model.PreviousPromotion {
	out := make([]model.PreviousPromotion, 0, len(entries))
	for _, e := range entries {
		p := model.PreviousPromotion{
			Rank:       stringField(e, "rank"),
			GradeLevel: stringField(e, "gradeLevel"),
		}
		if v := stringField(e, "date"); v != "" {
			if d, err := time.Parse("2006-01-02", v); err == nil {
				p.Date = &d
			}
		}
		out = append(out, p)
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
