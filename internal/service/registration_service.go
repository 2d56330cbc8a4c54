package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// ── 登记表单模块业务错误 ──

var (
	ErrDraftNotFound = errors.New("表单草稿不存在")
	ErrDateInvalid   = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// RegistrationService 登记表单业务接口
//
// 注册向导的四个分页各自落库：个人/教育/雇佣为结构化 upsert，
// 其他资料整体存 jsonb。分页中途可按 (phone, page) 暂存草稿。
type RegistrationService interface {
	SavePersonal(ctx context.Context, req *dto.SavePersonalRequest) error
	SaveEducation(ctx context.Context, req *dto.SaveEducationRequest) error
	SaveEmployment(ctx context.Context, req *dto.SaveEmploymentRequest) error
	SaveOthers(ctx context.Context, req *dto.SaveOthersRequest) error
	SaveDraft(ctx context.Context, req *dto.SaveFormDraftRequest) (*dto.FormDraftResponse, error)
	GetDraft(ctx context.Context, phone, page string) (*dto.FormDraftResponse, error)
	// ListStations 雇佣信息表单的标准网点下拉数据
	ListStations(ctx context.Context) ([]dto.StationOption, error)
}

type registrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(repo *repository.Repository, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, logger: logger}
}

// ────────────────────── SavePersonal ──────────────────────

func (s *registrationService) SavePersonal(ctx context.Context, req *dto.SavePersonalRequest) error {
	user, err := s.requireUser(ctx, req.Phone)
	if err != nil {
		return err
	}

	data := &model.PersonalData{
		UserID:             user.UserID,
		FirstName:          req.Data.FirstName,
		LastName:           req.Data.LastName,
		Gender:             req.Data.Gender,
		MaritalStatus:      req.Data.MaritalStatus,
		Address:            req.Data.Address,
		LGA:                req.Data.LGA,
		State:              req.Data.State,
		PlaceOfBirth:       req.Data.PlaceOfBirth,
		SenatorialDistrict: req.Data.SenatorialDistrict,
		PensionAdmin:       req.Data.PensionAdmin,
		PenComNo:           req.Data.PenComNo,
		NextOfKin:          req.Data.NextOfKin,
		NextOfKinPhone:     req.Data.NextOfKinPhone,
	}
	if req.Data.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.Data.DOB)
		if err != nil {
			return ErrDateInvalid
		}
		data.DOB = &dob
	}

	if err := s.repo.PersonalData.Upsert(ctx, data); err != nil {
		s.logger.Error("保存个人资料失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}

	// 邮箱挂在用户主档上
	if req.Data.Email != nil {
		user.Email = req.Data.Email
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.logger.Error("更新用户邮箱失败", zap.String("user_id", user.UserID), zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── SaveEducation ──────────────────────

func (s *registrationService) SaveEducation(ctx context.Context, req *dto.SaveEducationRequest) error {
	user, err := s.requireUser(ctx, req.Phone)
	if err != nil {
		return err
	}

	edu := &model.EducationHistory{
		UserID:          user.UserID,
		QualAtFirstAppt: &req.Data.HighestQualification,
		Institution:     &req.Data.InstitutionAttended,
		StartDate:       &req.Data.StartYear,
		EndDate:         &req.Data.EndYear,
	}

	quals := make([]model.AdditionalQualification, 0, len(req.Data.AdditionalQualifications))
	for _, q := range req.Data.AdditionalQualifications {
		qual := model.AdditionalQualification{
			Qualification: q.Qualification,
			Institution:   q.Institution,
			Type:          qualificationType(q.Type),
		}
		if q.Start != "" {
			v := q.Start
			qual.StartDate = &v
		}
		if q.End != "" {
			v := q.End
			qual.EndDate = &v
		}
		quals = append(quals, qual)
	}

	if err := s.repo.Education.ReplaceByUserID(ctx, edu, quals); err != nil {
		s.logger.Error("保存教育经历失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SaveEmployment ──────────────────────

func (s *registrationService) SaveEmployment(ctx context.Context, req *dto.SaveEmploymentRequest) error {
	user, err := s.requireUser(ctx, req.Phone)
	if err != nil {
		return err
	}

	emp := &model.EmploymentData{
		UserID:                 user.UserID,
		PersonnelNumber:        &req.Data.PersonnelNumber,
		IPPISNumber:            &req.Data.IPPISNumber,
		Rank:                   &req.Data.Rank,
		GradeLevel:             &req.Data.GradeLevel,
		Step:                   &req.Data.Step,
		RankAtFirstAppointment: &req.Data.RankAtFirstAppointment,
		PresentStation:         &req.Data.PresentStation,
		StandardStationID:      req.Data.StandardStationID,
		PresentJobDescription:  &req.Data.PresentJobDescription,
		Department:             &req.Data.Department,
		YearsInStation:         req.Data.YearsInStation,
		YearsInService:         req.Data.YearsInService,
	}

	for _, pair := range []struct {
		raw  string
		dest **time.Time
	}{
		{req.Data.DateFirstAppointed, &emp.DateFirstAppointed},
		{req.Data.DatePresentAppointment, &emp.DatePresentAppointment},
		{req.Data.DateLastPromotion, &emp.DateLastPromotion},
	} {
		d, err := time.Parse("2006-01-02", pair.raw)
		if err != nil {
			return ErrDateInvalid
		}
		*pair.dest = &d
	}

	stations := make([]model.PreviousStation, 0, len(req.Data.PreviousStations))
	for _, p := range req.Data.PreviousStations {
		stations = append(stations, model.PreviousStation{Station: p.Station, YearsInStation: p.YearsInStation})
	}
	jobs := make([]model.PreviousJob, 0, len(req.Data.PreviousJobsHandled))
	for _, p := range req.Data.PreviousJobsHandled {
		desc := p.JobDescription
		jobs = append(jobs, model.PreviousJob{Job: p.Job, YearsInJob: p.YearsInJob, JobDescription: &desc})
	}
	promotions := make([]model.PreviousPromotion, 0, len(req.Data.PreviousPromotion))
	for _, p := range req.Data.PreviousPromotion {
		promo := model.PreviousPromotion{Rank: p.Rank, GradeLevel: p.GradeLevel}
		if d, err := time.Parse("2006-01-02", p.Date); err == nil {
			promo.Date = &d
		}
		promotions = append(promotions, promo)
	}

	if err := s.repo.Employment.ReplaceByUserID(ctx, emp, stations, jobs, promotions); err != nil {
		s.logger.Error("保存雇佣信息失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SaveOthers ──────────────────────

func (s *registrationService) SaveOthers(ctx context.Context, req *dto.SaveOthersRequest) error {
	user, err := s.requireUser(ctx, req.Phone)
	if err != nil {
		return err
	}

	content := make(model.JSONList, 0, len(req.Certificates))
	for _, c := range req.Certificates {
		content = append(content, map[string]interface{}{
			"title":      c.Title,
			"dateIssued": c.DateIssued,
			"skills":     c.Skills,
			"fileName":   c.FileName,
		})
	}

	if err := s.repo.OtherData.Upsert(ctx, &model.OtherData{UserID: user.UserID, Content: content}); err != nil {
		s.logger.Error("保存其他资料失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SaveDraft / GetDraft ──────────────────────

func (s *registrationService) SaveDraft(ctx context.Context, req *dto.SaveFormDraftRequest) (*dto.FormDraftResponse, error) {
	draft := &model.FormDraft{
		Phone: req.Phone,
		Page:  req.Page,
		Data:  model.JSONMap(req.Data),
	}
	if err := s.repo.FormDraft.Upsert(ctx, draft); err != nil {
		s.logger.Error("暂存草稿失败", zap.String("phone", req.Phone), zap.String("page", req.Page), zap.Error(err))
		return nil, err
	}
	return toDraftResponse(draft), nil
}

func (s *registrationService) GetDraft(ctx context.Context, phone, page string) (*dto.FormDraftResponse, error) {
	draft, err := s.repo.FormDraft.Get(ctx, phone, page)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("查询草稿失败", zap.String("phone", phone), zap.String("page", page), zap.Error(err))
		return nil, err
	}
	return toDraftResponse(draft), nil
}

// ────────────────────── ListStations ──────────────────────

func (s *registrationService) ListStations(ctx context.Context) ([]dto.StationOption, error) {
	stations, err := s.repo.Station.List(ctx)
	if err != nil {
		s.logger.Error("查询标准网点失败", zap.Error(err))
		return nil, err
	}

	options := make([]dto.StationOption, 0, len(stations))
	for _, st := range stations {
		options = append(options, dto.StationOption{
			ID:   st.StationID,
			Name: st.Name,
			Type: st.Type,
		})
	}
	return options, nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *registrationService) requireUser(ctx context.Context, phone string) (*model.User, error) {
	user, err := s.repo.User.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func toDraftResponse(draft *model.FormDraft) *dto.FormDraftResponse {
	return &dto.FormDraftResponse{
		Phone:     draft.Phone,
		Page:      draft.Page,
		Data:      draft.Data,
		UpdatedAt: draft.UpdatedAt.Format(time.RFC3339),
	}
}
