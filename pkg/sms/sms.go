package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"staff-form/backend/config"
)

// Sender 短信发送接口
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// NewSender 根据配置创建短信发送器
// 未配置网关地址时返回日志模拟发送器（开发环境）
func NewSender(cfg *config.SMSConfig, logger *zap.Logger) Sender {
	if cfg.GatewayURL == "" {
		logger.Warn("未配置短信网关，短信将仅记录日志")
		return &mockSender{logger: logger}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &gatewaySender{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// ── 网关发送器 ──

// gatewaySender 调用 HTTP 短信网关（Termii 风格 JSON 接口）
type gatewaySender struct {
	cfg    *config.SMSConfig
	client *http.Client
	logger *zap.Logger
}

type gatewayRequest struct {
	APIKey  string `json:"api_key"`
	To      string `json:"to"`
	From    string `json:"from"`
	SMS     string `json:"sms"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

func (s *gatewaySender) Send(ctx context.Context, phone, message string) error {
	payload := gatewayRequest{
		APIKey:  s.cfg.APIToken,
		To:      phone,
		From:    s.cfg.Sender,
		SMS:     message,
		Type:    "plain",
		Channel: "generic",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化短信请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构建短信请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("请求短信网关失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("短信网关返回异常状态: %d", resp.StatusCode)
	}

	s.logger.Info("短信已发送", zap.String("phone", maskPhone(phone)))
	return nil
}

// ── 日志模拟发送器 ──

type mockSender struct {
	logger *zap.Logger
}

func (s *mockSender) Send(_ context.Context, phone, message string) error {
	s.logger.Info("[模拟短信]",
		zap.String("phone", maskPhone(phone)),
		zap.String("message", message),
	)
	return nil
}

// maskPhone 日志中隐去手机号中间四位
func maskPhone(phone string) string {
	if len(phone) < 7 {
		return "****"
	}
	return phone[:3] + "****" + phone[len(phone)-4:]
}
