package model

import "time"

// OTP 手机验证码表 — 对应 otps
// 同一手机号可存在多条记录，校验时取最新一条未使用且未过期的
type OTP struct {
	OTPID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"otp_id"`
	Phone     string    `gorm:"type:varchar(20);not null;index:idx_otps_phone_created" json:"phone"`
	Code      string    `gorm:"type:varchar(6);not null"                       json:"-"`
	Verified  bool      `gorm:"not null;default:false"                         json:"verified"`
	ExpiresAt time.Time `gorm:"not null"                                       json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_otps_phone_created,sort:desc" json:"created_at"`
}

// TableName 指定表名
func (OTP) TableName() string { return "otps" }
