package model

import "time"

// PersonalData 个人资料表 — 对应 personal_data（每用户一条）
type PersonalData struct {
	PersonalDataID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"personal_data_id"`
	UserID             string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	FirstName          *string    `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName           *string    `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Gender             *string    `gorm:"type:varchar(10)"  json:"gender,omitempty"`
	DOB                *time.Time `gorm:"type:date"         json:"dob,omitempty"`
	MaritalStatus      *string    `gorm:"type:varchar(20)"  json:"marital_status,omitempty"`
	Address            *string    `gorm:"type:text"         json:"address,omitempty"`
	LGA                *string    `gorm:"type:varchar(100)" json:"lga,omitempty"`
	State              *string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	PlaceOfBirth       *string    `gorm:"type:varchar(100)" json:"place_of_birth,omitempty"`
	SenatorialDistrict *string    `gorm:"type:varchar(100)" json:"senatorial_district,omitempty"`
	PensionAdmin       *string    `gorm:"type:varchar(200)" json:"pension_admin,omitempty"`
	PenComNo           *string    `gorm:"type:varchar(50);column:pencom_no" json:"pencom_no,omitempty"`
	NextOfKin          *string    `gorm:"type:varchar(200)" json:"next_of_kin,omitempty"`
	NextOfKinPhone     *string    `gorm:"type:varchar(20)"  json:"next_of_kin_phone,omitempty"`
	BaseModel
}

// TableName 指定表名
func (PersonalData) TableName() string { return "personal_data" }
