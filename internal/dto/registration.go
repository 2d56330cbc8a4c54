package dto

// ── 个人资料 ──

// SavePersonalRequest 保存个人资料请求
// 除 Phone 外字段均可选，只更新提供的字段
type SavePersonalRequest struct {
	Phone string           `json:"phone" binding:"required,min=7,max=20"`
	Data  PersonalDataForm `json:"data"  binding:"required"`
}

// PersonalDataForm 个人资料表单
type PersonalDataForm struct {
	Email              *string `json:"email"               binding:"omitempty,email"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Gender             *string `json:"gender"              binding:"omitempty,oneof=MALE FEMALE OTHER"`
	DOB                *string `json:"dob"` // ISO-8601 日期
	MaritalStatus      *string `json:"marital_status"`
	Address            *string `json:"address"`
	LGA                *string `json:"lga"`
	State              *string `json:"state"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	SenatorialDistrict *string `json:"senatorial_district"`
	PensionAdmin       *string `json:"pension_admin"`
	PenComNo           *string `json:"pencom_no"`
	NextOfKin          *string `json:"next_of_kin"`
	NextOfKinPhone     *string `json:"next_of_kin_phone"`
}

// ── 教育经历 ──

// SaveEducationRequest 保存教育经历请求
type SaveEducationRequest struct {
	Phone string        `json:"phone" binding:"required,min=7,max=20"`
	Data  EducationForm `json:"data"  binding:"required"`
}

// EducationForm 教育经历表单
type EducationForm struct {
	HighestQualification     string              `json:"highest_qualification" binding:"required"`
	InstitutionAttended      string              `json:"institution_attended"  binding:"required"`
	StartYear                string              `json:"start_year"            binding:"required"`
	EndYear                  string              `json:"end_year"              binding:"required"`
	AdditionalQualifications []QualificationForm `json:"additional_qualifications" binding:"omitempty,dive"`
}

// QualificationForm 附加学历表单
type QualificationForm struct {
	Qualification string `json:"qualification" binding:"required"`
	Institution   string `json:"institution"   binding:"required"`
	Type          string `json:"type"          binding:"required"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

// ── 雇佣信息 ──

// SaveEmploymentRequest 保存雇佣信息请求
type SaveEmploymentRequest struct {
	Phone string         `json:"phone" binding:"required,min=7,max=20"`
	Data  EmploymentForm `json:"data"  binding:"required"`
}

// EmploymentForm 雇佣信息表单
type EmploymentForm struct {
	PersonnelNumber        string              `json:"personnel_number"         binding:"required"`
	IPPISNumber            string              `json:"ippis_number"             binding:"required"`
	Rank                   string              `json:"rank"                     binding:"required"`
	GradeLevel             string              `json:"grade_level"              binding:"required"`
	Step                   string              `json:"step"                     binding:"required"`
	DateFirstAppointed     string              `json:"date_first_appointed"     binding:"required"`
	DatePresentAppointment string              `json:"date_present_appointment" binding:"required"`
	DateLastPromotion      string              `json:"date_last_promotion"      binding:"required"`
	RankAtFirstAppointment string              `json:"rank_at_first_appointment" binding:"required"`
	PresentStation         string              `json:"present_station"          binding:"required"`
	StandardStationID      *int                `json:"standard_station_id"`
	PresentJobDescription  string              `json:"present_job_description"  binding:"required"`
	Department             string              `json:"department"               binding:"required"`
	YearsInStation         int                 `json:"years_in_station"         binding:"min=0"`
	YearsInService         int                 `json:"years_in_service"         binding:"min=0"`
	PreviousStations       []PrevStationForm   `json:"previous_stations"        binding:"omitempty,dive"`
	PreviousJobsHandled    []PrevJobForm       `json:"previous_jobs_handled"    binding:"omitempty,dive"`
	PreviousPromotion      []PrevPromotionForm `json:"previous_promotion"       binding:"omitempty,dive"`
}

// PrevStationForm 历史网点表单
type PrevStationForm struct {
	Station        string `json:"station"          binding:"required"`
	YearsInStation string `json:"years_in_station" binding:"required"`
}

// PrevJobForm 历史岗位表单
type PrevJobForm struct {
	Job            string `json:"job"             binding:"required"`
	YearsInJob     string `json:"years_in_job"    binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}

// PrevPromotionForm 历史晋升表单
type PrevPromotionForm struct {
	Rank       string `json:"rank"        binding:"required"`
	GradeLevel string `json:"grade_level" binding:"required"`
	Date       string `json:"date"        binding:"required"`
}

// ── 其他资料 ──

// SaveOthersRequest 保存其他资料（证书列表）请求
type SaveOthersRequest struct {
	Phone        string            `json:"phone"        binding:"required,min=7,max=20"`
	Certificates []CertificateForm `json:"certificates" binding:"omitempty,dive"`
}

// CertificateForm 证书表单
// 文件本体不在本服务存储，仅记录文件名（对象存储路径由前端上传后回填）
type CertificateForm struct {
	Title      string `json:"title"       binding:"required"`
	DateIssued string `json:"date_issued" binding:"required"`
	Skills     string `json:"skills"`
	FileName   string `json:"file_name"`
}

// StationOption 标准网点下拉项
type StationOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ── 表单草稿 ──

// SaveFormDraftRequest 暂存表单草稿请求
type SaveFormDraftRequest struct {
	Phone string                 `json:"phone" binding:"required,min=7,max=20"`
	Page  string                 `json:"page"  binding:"required,oneof=personal education employment others"`
	Data  map[string]interface{} `json:"data"  binding:"required"`
}

// FormDraftResponse 表单草稿响应
type FormDraftResponse struct {
	Phone     string                 `json:"phone"`
	Page      string                 `json:"page"`
	Data      map[string]interface{} `json:"data"`
	UpdatedAt string                 `json:"updated_at"`
}
