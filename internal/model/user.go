package model

// 用户角色
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User 用户表 — 对应 users
// 手机号是注册入口的唯一身份标识，密码在 OTP 验证通过后设置
type User struct {
	UserID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Phone         string  `gorm:"type:varchar(20);not null;uniqueIndex"          json:"phone"`
	Email         *string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	PasswordHash  *string `gorm:"type:varchar(255)"                              json:"-"`
	Role          string  `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"`
	PhoneVerified bool    `gorm:"not null;default:false"                         json:"phone_verified"`
	Done          bool    `gorm:"not null;default:false"                         json:"done"`
	CreatedBy     *string `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	UpdatedBy     *string `gorm:"type:uuid"                                      json:"updated_by,omitempty"`
	BaseModel

	// 关联
	PersonalData   *PersonalData     `gorm:"foreignKey:UserID;references:UserID" json:"personal_data,omitempty"`
	EducationHistory *EducationHistory `gorm:"foreignKey:UserID;references:UserID" json:"education_history,omitempty"`
	EmploymentData *EmploymentData   `gorm:"foreignKey:UserID;references:UserID" json:"employment_data,omitempty"`
	OtherData      *OtherData        `gorm:"foreignKey:UserID;references:UserID" json:"other_data,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
