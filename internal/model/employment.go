package model

import "time"

// EmploymentData 雇佣信息表 — 对应 employment_data（每用户一条）
type EmploymentData struct {
	EmploymentID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employment_id"`
	UserID                 string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	PersonnelNumber        *string    `gorm:"type:varchar(50)"  json:"personnel_number,omitempty"`
	IPPISNumber            *string    `gorm:"type:varchar(50);column:ippis_number" json:"ippis_number,omitempty"`
	Rank                   *string    `gorm:"type:varchar(100)" json:"rank,omitempty"`
	GradeLevel             *string    `gorm:"type:varchar(20)"  json:"grade_level,omitempty"`
	Step                   *string    `gorm:"type:varchar(10)"  json:"step,omitempty"`
	DateFirstAppointed     *time.Time `gorm:"type:date"         json:"date_first_appointed,omitempty"`
	DatePresentAppointment *time.Time `gorm:"type:date"         json:"date_present_appointment,omitempty"`
	DateLastPromotion      *time.Time `gorm:"type:date"         json:"date_last_promotion,omitempty"`
	RankAtFirstAppointment *string    `gorm:"type:varchar(100)" json:"rank_at_first_appointment,omitempty"`
	PresentStation         *string    `gorm:"type:varchar(200)" json:"present_station,omitempty"`
	StandardStationID      *int       `gorm:"type:integer"      json:"standard_station_id,omitempty"`
	PresentJobDescription  *string    `gorm:"type:text"         json:"present_job_description,omitempty"`
	Department             *string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	YearsInStation         int        `gorm:"not null;default:0" json:"years_in_station"`
	YearsInService         int        `gorm:"not null;default:0" json:"years_in_service"`
	BaseModel

	// 关联
	StandardStation     *Station            `gorm:"foreignKey:StandardStationID;references:StationID" json:"standard_station,omitempty"`
	PreviousStations    []PreviousStation   `gorm:"foreignKey:EmploymentID;references:EmploymentID" json:"previous_stations,omitempty"`
	PreviousJobsHandled []PreviousJob       `gorm:"foreignKey:EmploymentID;references:EmploymentID" json:"previous_jobs_handled,omitempty"`
	PreviousPromotions  []PreviousPromotion `gorm:"foreignKey:EmploymentID;references:EmploymentID" json:"previous_promotions,omitempty"`
}

// TableName 指定表名
func (EmploymentData) TableName() string { return "employment_data" }

// PreviousStation 历史网点表 — 对应 previous_stations
type PreviousStation struct {
	PreviousStationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"previous_station_id"`
	EmploymentID      string    `gorm:"type:uuid;not null;index"                       json:"employment_id"`
	Station           string    `gorm:"type:varchar(200);not null"                     json:"station"`
	YearsInStation    string    `gorm:"type:varchar(10);not null"                      json:"years_in_station"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PreviousStation) TableName() string { return "previous_stations" }

// PreviousJob 历史岗位表 — 对应 previous_jobs
type PreviousJob struct {
	PreviousJobID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"previous_job_id"`
	EmploymentID   string    `gorm:"type:uuid;not null;index"                       json:"employment_id"`
	Job            string    `gorm:"type:varchar(200);not null"                     json:"job"`
	YearsInJob     string    `gorm:"type:varchar(10);not null"                      json:"years_in_job"`
	JobDescription *string   `gorm:"type:text"                                      json:"job_description,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PreviousJob) TableName() string { return "previous_jobs" }

// PreviousPromotion 历史晋升表 — 对应 previous_promotions
type PreviousPromotion struct {
	PreviousPromotionID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"previous_promotion_id"`
	EmploymentID        string     `gorm:"type:uuid;not null;index"                       json:"employment_id"`
	Rank                string     `gorm:"type:varchar(100);not null"                     json:"rank"`
	GradeLevel          string     `gorm:"type:varchar(20);not null"                      json:"grade_level"`
	Date                *time.Time `gorm:"type:date"                                      json:"date,omitempty"`
	CreatedAt           time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PreviousPromotion) TableName() string { return "previous_promotions" }
