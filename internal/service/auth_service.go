package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staff-form/backend/config"
	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/model"
	"staff-form/backend/internal/repository"
	"staff-form/backend/pkg/jwt"
	"staff-form/backend/pkg/redis"
	"staff-form/backend/pkg/sms"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("手机号或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrOTPInvalid         = errors.New("验证码错误或已过期")
	ErrOTPRateLimited     = errors.New("验证码发送过于频繁，请稍后再试")
	ErrLoginRateLimited   = errors.New("登录尝试过多，请稍后再试")
	ErrPhoneNotVerified   = errors.New("手机号未验证")
	ErrPasswordTooWeak    = errors.New("密码须包含大小写字母、数字和符号，且不少于 8 位")
	ErrRefreshTokenNeeded = errors.New("需要 refresh token")
)

// 密码散列成本。登记系统写多读少，线上压测可接受 cost 12 的延迟
const bcryptCost = 12

// AuthService 认证业务接口
//
// 注册入口是手机号：发送 OTP → 校验 OTP（顺手建档）→ 设置密码。
// 之后走常规手机号 + 密码登录，Token 对由 JWT 管理器签发。
type AuthService interface {
	SendOTP(ctx context.Context, req *dto.SendOTPRequest) (*dto.SendOTPResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
	CreatePassword(ctx context.Context, req *dto.CreatePasswordRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 token 的 JTI 拉黑至其自然过期
	Logout(ctx context.Context, claims *jwt.Claims) error
	// MarkDone 标记注册向导全部完成，并清理表单草稿
	MarkDone(ctx context.Context, req *dto.MarkDoneRequest) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	rdb       *redis.Client
	smsSender sms.Sender
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// rdb 允许为 nil（Redis 不可用时限流和黑名单降级为直接放行）。
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	smsSender sms.Sender,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		rdb:       rdb,
		smsSender: smsSender,
		logger:    logger,
	}
}

// ────────────────────── SendOTP ──────────────────────

func (s *authService) SendOTP(ctx context.Context, req *dto.SendOTPRequest) (*dto.SendOTPResponse, error) {
	// 已注册完成或已验证的手机号直接告知前端，不再发码
	if user, err := s.repo.User.GetByPhone(ctx, req.Phone); err == nil {
		if user.Done {
			return &dto.SendOTPResponse{Done: true}, nil
		}
		if user.PhoneVerified && user.PasswordHash != nil {
			return &dto.SendOTPResponse{Verified: true}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if !s.allowRate(ctx, "otp:send:"+req.Phone, s.cfg.OTP.MaxPerHour, time.Hour) {
		return nil, ErrOTPRateLimited
	}

	code, err := generateOTPCode()
	if err != nil {
		return nil, err
	}

	otp := &model.OTP{
		Phone:     req.Phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.OTP.TTL),
	}
	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		s.logger.Error("保存验证码失败", zap.Error(err))
		return nil, err
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.cfg.OTP.TTL.Minutes()))
	if err := s.smsSender.Send(ctx, req.Phone, message); err != nil {
		s.logger.Error("发送验证码短信失败", zap.Error(err))
		return nil, err
	}

	return &dto.SendOTPResponse{
		Sent:      true,
		ExpiresAt: otp.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── VerifyOTP ──────────────────────

// VerifyOTP 校验通过即按手机号建档（或更新既有档案的验证标记）
func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	otp, err := s.repo.OTP.GetLatestValid(ctx, req.Phone, req.Code, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPInvalid
		}
		s.logger.Error("查询验证码失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.OTP.MarkVerified(ctx, otp.OTPID); err != nil {
		s.logger.Error("标记验证码已用失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Phone:         req.Phone,
		Role:          model.RoleStaff,
		PhoneVerified: true,
	}
	if err := s.repo.User.UpsertByPhone(ctx, user); err != nil {
		s.logger.Error("建档失败", zap.String("phone", req.Phone), zap.Error(err))
		return nil, err
	}

	return &dto.VerifyOTPResponse{Verified: true, UserID: user.UserID}, nil
}

// ────────────────────── CreatePassword ──────────────────────

func (s *authService) CreatePassword(ctx context.Context, req *dto.CreatePasswordRequest) (*dto.TokenResponse, error) {
	if !passwordMeetsPolicy(req.Password) {
		return nil, ErrPasswordTooWeak
	}

	user, err := s.repo.User.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !user.PhoneVerified {
		return nil, ErrPhoneNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("生成密码散列失败", zap.Error(err))
		return nil, err
	}
	hashStr := string(hash)
	user.PasswordHash = &hashStr

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("保存密码失败", zap.Error(err))
		return nil, err
	}

	return s.issueTokens(user)
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	limitKey := "login:attempt:" + req.Phone
	if !s.allowRate(ctx, limitKey, s.cfg.Auth.LoginMaxAttempts, s.cfg.Auth.LoginAttemptWindow) {
		return nil, ErrLoginRateLimited
	}

	user, err := s.repo.User.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 登录成功清空失败计数
	if s.rdb != nil {
		if err := s.rdb.ResetRateLimit(ctx, limitKey); err != nil {
			s.logger.Warn("清空登录计数失败", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshTokenNeeded
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 旧 refresh token 一次性使用，立即拉黑
	if s.rdb != nil && claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
				s.logger.Warn("拉黑旧 refresh token 失败", zap.Error(err))
			}
		}
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, claims.ID, ttl)
}

// ────────────────────── MarkDone ──────────────────────

func (s *authService) MarkDone(ctx context.Context, req *dto.MarkDoneRequest) error {
	user, err := s.repo.User.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.MarkDone(ctx, user.UserID); err != nil {
		s.logger.Error("标记注册完成失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}

	// 注册完成后草稿无保留价值
	if err := s.repo.FormDraft.DeleteByPhone(ctx, req.Phone); err != nil {
		s.logger.Warn("清理表单草稿失败", zap.String("phone", req.Phone), zap.Error(err))
	}
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Phone, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Phone, user.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// allowRate Redis 不可用时放行，不把认证入口绑死在限流组件上
func (s *authService) allowRate(ctx context.Context, key string, limit int, window time.Duration) bool {
	if s.rdb == nil || limit <= 0 {
		return true
	}
	allowed, err := s.rdb.CheckRateLimit(ctx, key, limit, window)
	if err != nil {
		s.logger.Warn("限流检查失败", zap.String("key", key), zap.Error(err))
		return true
	}
	return allowed
}

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:            user.UserID,
		Phone:         user.Phone,
		Role:          user.Role,
		PhoneVerified: user.PhoneVerified,
		Done:          user.Done,
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	return resp
}

// generateOTPCode 生成 6 位数字验证码（crypto/rand）
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// passwordMeetsPolicy 至少 8 位，且同时包含大写、小写、数字、符号
func passwordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
