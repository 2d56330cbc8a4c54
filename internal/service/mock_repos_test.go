package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
)

// newTestRepo 构建全内存仓储聚合，TxRunner 直接透传（单测不关心事务边界）
func newTestRepo() *repository.Repository {
	repo := &repository.Repository{
		User:              newMockUserRepo(),
		OTP:               newMockOTPRepo(),
		FormDraft:         newMockFormDraftRepo(),
		PersonalData:      newMockPersonalDataRepo(),
		Education:         newMockEducationRepo(),
		Employment:        newMockEmploymentRepo(),
		OtherData:         newMockOtherDataRepo(),
		Station:           newMockStationRepo(),
		SubmissionWindow:  newMockWindowRepo(),
		MonthlySubmission: newMockSubmissionRepo(),
	}
	repo.Tx = &passthroughTxRunner{repo: repo}
	return repo
}

// ── Mock TxRunner ──

type passthroughTxRunner struct {
	repo *repository.Repository
}

func (r *passthroughTxRunner) RunInTx(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	return fn(r.repo)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: UserID
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Phone == user.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhoneWithDetails(ctx context.Context, phone string) (*model.User, error) {
	return m.GetByPhone(ctx, phone)
}

func (m *mockUserRepo) UpsertByPhone(ctx context.Context, user *model.User) error {
	existing, err := m.GetByPhone(ctx, user.Phone)
	if err != nil {
		return m.Create(ctx, user)
	}
	if user.Email != nil {
		existing.Email = user.Email
	}
	existing.PhoneVerified = user.PhoneVerified
	existing.UpdatedAt = time.Now()
	*user = *existing
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) MarkPhoneVerified(ctx context.Context, phone string) error {
	u, err := m.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	u.PhoneVerified = true
	return nil
}

func (m *mockUserRepo) MarkDone(_ context.Context, userID string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Done = true
	return nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, userID, role string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) ListWithDetails(_ context.Context, station, grade string, limit int) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if station != "" {
			if u.EmploymentData == nil || u.EmploymentData.PresentStation == nil || *u.EmploymentData.PresentStation != station {
				continue
			}
		}
		if grade != "" {
			if u.EmploymentData == nil || u.EmploymentData.GradeLevel == nil || *u.EmploymentData.GradeLevel != grade {
				continue
			}
		}
		result = append(result, *u)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) ListCompleted(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Done {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

// ── Mock OTPRepository ──

type mockOTPRepo struct {
	otps []*model.OTP
	seq  int
}

func newMockOTPRepo() *mockOTPRepo {
	return &mockOTPRepo{}
}

func (m *mockOTPRepo) Create(_ context.Context, otp *model.OTP) error {
	m.seq++
	otp.OTPID = fmt.Sprintf("otp-%d", m.seq)
	otp.CreatedAt = time.Now()
	m.otps = append(m.otps, otp)
	return nil
}

func (m *mockOTPRepo) GetLatestValid(_ context.Context, phone, code string, now time.Time) (*model.OTP, error) {
	for i := len(m.otps) - 1; i >= 0; i-- {
		o := m.otps[i]
		if o.Phone == phone && o.Code == code && !o.Verified && o.ExpiresAt.After(now) {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOTPRepo) MarkVerified(_ context.Context, otpID string) error {
	for _, o := range m.otps {
		if o.OTPID == otpID {
			o.Verified = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOTPRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*model.OTP
	var removed int64
	for _, o := range m.otps {
		if o.ExpiresAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	m.otps = kept
	return removed, nil
}

// ── Mock FormDraftRepository ──

type mockFormDraftRepo struct {
	drafts map[string]*model.FormDraft // key: phone+"|"+page
}

func newMockFormDraftRepo() *mockFormDraftRepo {
	return &mockFormDraftRepo{drafts: make(map[string]*model.FormDraft)}
}

func (m *mockFormDraftRepo) Upsert(_ context.Context, draft *model.FormDraft) error {
	key := draft.Phone + "|" + draft.Page
	if existing, ok := m.drafts[key]; ok {
		existing.Data = draft.Data
		existing.UpdatedAt = time.Now()
		*draft = *existing
		return nil
	}
	draft.DraftID = "draft-" + key
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt
	m.drafts[key] = draft
	return nil
}

func (m *mockFormDraftRepo) Get(_ context.Context, phone, page string) (*model.FormDraft, error) {
	if d, ok := m.drafts[phone+"|"+page]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFormDraftRepo) DeleteByPhone(_ context.Context, phone string) error {
	for key, d := range m.drafts {
		if d.Phone == phone {
			delete(m.drafts, key)
		}
	}
	return nil
}

// ── Mock PersonalDataRepository ──

type mockPersonalDataRepo struct {
	records map[string]*model.PersonalData // key: UserID
}

func newMockPersonalDataRepo() *mockPersonalDataRepo {
	return &mockPersonalDataRepo{records: make(map[string]*model.PersonalData)}
}

func (m *mockPersonalDataRepo) GetByUserID(_ context.Context, userID string) (*model.PersonalData, error) {
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonalDataRepo) Upsert(_ context.Context, data *model.PersonalData) error {
	if existing, ok := m.records[data.UserID]; ok {
		data.PersonalDataID = existing.PersonalDataID
		data.CreatedAt = existing.CreatedAt
	} else {
		data.PersonalDataID = "pd-" + data.UserID
		data.CreatedAt = time.Now()
	}
	data.UpdatedAt = time.Now()
	m.records[data.UserID] = data
	return nil
}

// ── Mock EducationRepository ──

type mockEducationRepo struct {
	records map[string]*model.EducationHistory // key: UserID
}

func newMockEducationRepo() *mockEducationRepo {
	return &mockEducationRepo{records: make(map[string]*model.EducationHistory)}
}

func (m *mockEducationRepo) GetByUserID(_ context.Context, userID string) (*model.EducationHistory, error) {
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEducationRepo) ReplaceByUserID(_ context.Context, edu *model.EducationHistory, quals []model.AdditionalQualification) error {
	if existing, ok := m.records[edu.UserID]; ok {
		edu.EducationID = existing.EducationID
	} else {
		edu.EducationID = "edu-" + edu.UserID
	}
	edu.AdditionalQualifications = quals
	m.records[edu.UserID] = edu
	return nil
}

func (m *mockEducationRepo) AppendQualifications(_ context.Context, userID string, quals []model.AdditionalQualification) error {
	r, ok := m.records[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.AdditionalQualifications = append(r.AdditionalQualifications, quals...)
	return nil
}

// ── Mock EmploymentRepository ──

type mockEmploymentRepo struct {
	records map[string]*model.EmploymentData // key: UserID
}

func newMockEmploymentRepo() *mockEmploymentRepo {
	return &mockEmploymentRepo{records: make(map[string]*model.EmploymentData)}
}

func (m *mockEmploymentRepo) GetByUserID(_ context.Context, userID string) (*model.EmploymentData, error) {
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmploymentRepo) ReplaceByUserID(_ context.Context, emp *model.EmploymentData,
	stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error {
	if existing, ok := m.records[emp.UserID]; ok {
		emp.EmploymentID = existing.EmploymentID
	} else {
		emp.EmploymentID = "emp-" + emp.UserID
	}
	emp.PreviousStations = stations
	emp.PreviousJobsHandled = jobs
	emp.PreviousPromotions = promotions
	m.records[emp.UserID] = emp
	return nil
}

func (m *mockEmploymentRepo) AppendHistory(_ context.Context, userID string,
	stations []model.PreviousStation, jobs []model.PreviousJob, promotions []model.PreviousPromotion) error {
	r, ok := m.records[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.PreviousStations = append(r.PreviousStations, stations...)
	r.PreviousJobsHandled = append(r.PreviousJobsHandled, jobs...)
	r.PreviousPromotions = append(r.PreviousPromotions, promotions...)
	return nil
}

func (m *mockEmploymentRepo) DistinctStations(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, r := range m.records {
		if r.PresentStation != nil {
			seen[*r.PresentStation] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockEmploymentRepo) DistinctGradeLevels(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, r := range m.records {
		if r.GradeLevel != nil {
			seen[*r.GradeLevel] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

// ── Mock OtherDataRepository ──

type mockOtherDataRepo struct {
	records map[string]*model.OtherData // key: UserID
}

func newMockOtherDataRepo() *mockOtherDataRepo {
	return &mockOtherDataRepo{records: make(map[string]*model.OtherData)}
}

func (m *mockOtherDataRepo) GetByUserID(_ context.Context, userID string) (*model.OtherData, error) {
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOtherDataRepo) Upsert(_ context.Context, data *model.OtherData) error {
	if existing, ok := m.records[data.UserID]; ok {
		data.OtherDataID = existing.OtherDataID
		data.CreatedAt = existing.CreatedAt
	} else {
		data.OtherDataID = "od-" + data.UserID
		data.CreatedAt = time.Now()
	}
	data.UpdatedAt = time.Now()
	m.records[data.UserID] = data
	return nil
}

// ── Mock StationRepository ──

type mockStationRepo struct {
	stations map[int]*model.Station
	seq      int
}

func newMockStationRepo() *mockStationRepo {
	return &mockStationRepo{stations: make(map[int]*model.Station)}
}

func (m *mockStationRepo) add(name, typ string) *model.Station {
	m.seq++
	st := &model.Station{StationID: m.seq, Name: name, Type: typ}
	m.stations[st.StationID] = st
	return st
}

func (m *mockStationRepo) List(_ context.Context) ([]model.Station, error) {
	result := make([]model.Station, 0, len(m.stations))
	for _, s := range m.stations {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StationID < result[j].StationID })
	return result, nil
}

func (m *mockStationRepo) GetByID(_ context.Context, id int) (*model.Station, error) {
	if s, ok := m.stations[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SubmissionWindowRepository ──

type mockWindowRepo struct {
	windows map[string]*model.SubmissionWindow // key: YearMonth
}

func newMockWindowRepo() *mockWindowRepo {
	return &mockWindowRepo{windows: make(map[string]*model.SubmissionWindow)}
}

func (m *mockWindowRepo) Get(_ context.Context, yearMonth string) (*model.SubmissionWindow, error) {
	if w, ok := m.windows[yearMonth]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWindowRepo) List(_ context.Context) ([]model.SubmissionWindow, error) {
	result := make([]model.SubmissionWindow, 0, len(m.windows))
	for _, w := range m.windows {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].YearMonth > result[j].YearMonth })
	return result, nil
}

func (m *mockWindowRepo) Create(_ context.Context, window *model.SubmissionWindow) error {
	if _, ok := m.windows[window.YearMonth]; ok {
		return gorm.ErrDuplicatedKey
	}
	window.CreatedAt = time.Now()
	window.UpdatedAt = window.CreatedAt
	m.windows[window.YearMonth] = window
	return nil
}

func (m *mockWindowRepo) Update(_ context.Context, window *model.SubmissionWindow) error {
	if _, ok := m.windows[window.YearMonth]; !ok {
		return gorm.ErrRecordNotFound
	}
	window.UpdatedAt = time.Now()
	m.windows[window.YearMonth] = window
	return nil
}

// openWindow 测试辅助：直接把某月窗口置为开放
func (m *mockWindowRepo) openWindow(yearMonth string) {
	now := time.Now()
	m.windows[yearMonth] = &model.SubmissionWindow{
		YearMonth: yearMonth,
		IsOpen:    true,
		OpenAt:    &now,
	}
}

// ── Mock MonthlySubmissionRepository ──

type mockSubmissionRepo struct {
	subs []*model.MonthlySubmission
	seq  int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{}
}

func (m *mockSubmissionRepo) GetByUserAndMonth(_ context.Context, userID, yearMonth string) (*model.MonthlySubmission, error) {
	for _, s := range m.subs {
		if s.UserID == userID && s.YearMonth == yearMonth {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetLatestFinal(_ context.Context, userID string) (*model.MonthlySubmission, error) {
	var latest *model.MonthlySubmission
	for _, s := range m.subs {
		if s.UserID != userID || s.Status != model.SubmissionStatusFinal {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.MonthlySubmission) error {
	for _, s := range m.subs {
		if s.UserID == sub.UserID && s.YearMonth == sub.YearMonth {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	sub.SubmissionID = fmt.Sprintf("sub-%d", m.seq)
	sub.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	sub.UpdatedAt = sub.CreatedAt
	m.subs = append(m.subs, sub)
	return nil
}

func (m *mockSubmissionRepo) Update(_ context.Context, sub *model.MonthlySubmission) error {
	for i, s := range m.subs {
		if s.SubmissionID == sub.SubmissionID {
			sub.UpdatedAt = time.Now()
			m.subs[i] = sub
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) List(_ context.Context, userID, yearMonth, status string) ([]model.MonthlySubmission, error) {
	var result []model.MonthlySubmission
	for _, s := range m.subs {
		if s.UserID != userID {
			continue
		}
		if yearMonth != "" && s.YearMonth != yearMonth {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].YearMonth > result[j].YearMonth })
	return result, nil
}

func (m *mockSubmissionRepo) CountFinalByWeek(_ context.Context, since time.Time) ([]repository.WeekCount, error) {
	byWeek := make(map[string]int)
	for _, s := range m.subs {
		if s.Status != model.SubmissionStatusFinal || s.CreatedAt.Before(since) {
			continue
		}
		// 周一为一周起点，对齐 Postgres date_trunc('week', ...)
		day := s.CreatedAt
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset).Format("2006-01-02")
		byWeek[monday]++
	}
	weeks := make([]string, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	result := make([]repository.WeekCount, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, repository.WeekCount{Week: w, Count: byWeek[w]})
	}
	return result, nil
}

func (m *mockSubmissionRepo) LockUser(_ context.Context, _ string) error {
	return nil
}
