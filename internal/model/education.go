package model

import "time"

// EducationHistory 教育经历表 — 对应 education_history（每用户一条）
type EducationHistory struct {
	EducationID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"education_id"`
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	QualAtFirstAppt *string `gorm:"type:varchar(200)" json:"qual_at_first_appt,omitempty"`
	Institution     *string `gorm:"type:varchar(200)" json:"institution,omitempty"`
	StartDate       *string `gorm:"type:varchar(20)"  json:"start_date,omitempty"`
	EndDate         *string `gorm:"type:varchar(20)"  json:"end_date,omitempty"`
	BaseModel

	// 关联
	AdditionalQualifications []AdditionalQualification `gorm:"foreignKey:EducationID;references:EducationID" json:"additional_qualifications,omitempty"`
}

// TableName 指定表名
func (EducationHistory) TableName() string { return "education_history" }

// 附加学历类型
const (
	QualificationTypeAdditional   = "ADDITIONAL"
	QualificationTypeProfessional = "PROFESSIONAL"
)

// AdditionalQualification 附加学历表 — 对应 additional_qualifications
type AdditionalQualification struct {
	QualificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"qualification_id"`
	EducationID     string    `gorm:"type:uuid;not null;index"                       json:"education_id"`
	Qualification   string    `gorm:"type:varchar(200);not null"                     json:"qualification"`
	Institution     string    `gorm:"type:varchar(200);not null"                     json:"institution"`
	Type            string    `gorm:"type:varchar(30);not null;default:'ADDITIONAL'" json:"type"`
	StartDate       *string   `gorm:"type:varchar(20)"                               json:"start_date,omitempty"`
	EndDate         *string   `gorm:"type:varchar(20)"                               json:"end_date,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AdditionalQualification) TableName() string { return "additional_qualifications" }
