package dto

// SendOTPRequest 发送验证码请求
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=7,max=20"`
}

// SendOTPResponse 发送验证码响应
// 用户已注册完成或已验证时直接返回对应标记，前端据此跳转
type SendOTPResponse struct {
	Sent      bool   `json:"sent"`
	Done      bool   `json:"done,omitempty"`
	Verified  bool   `json:"verified,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// VerifyOTPRequest 校验验证码请求
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=7,max=20"`
	Code  string `json:"code"  binding:"required,len=6"`
}

// VerifyOTPResponse 校验验证码响应
type VerifyOTPResponse struct {
	Verified bool   `json:"verified"`
	UserID   string `json:"user_id,omitempty"`
}

// CreatePasswordRequest 设置密码请求（OTP 验证通过后）
type CreatePasswordRequest struct {
	Phone    string `json:"phone"    binding:"required,min=7,max=20"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Phone    string `json:"phone"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// MarkDoneRequest 标记注册完成请求
type MarkDoneRequest struct {
	Phone string `json:"phone" binding:"required,min=7,max=20"`
}
