package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/service"
	"staff-form/backend/pkg/response"
)

// WindowHandler 提交窗口模块 HTTP 处理器
type WindowHandler struct {
	windowSvc service.SubmissionWindowService
}

// NewWindowHandler 创建 WindowHandler
func NewWindowHandler(windowSvc service.SubmissionWindowService) *WindowHandler {
	return &WindowHandler{windowSvc: windowSvc}
}

// GetWindow 查询某月窗口状态（不存在视为关闭，不报 404）
// GET /api/v1/submission-windows/:yearMonth
func (h *WindowHandler) GetWindow(c *gin.Context) {
	yearMonth := c.Param("yearMonth")
	if yearMonth == "" {
		response.BadRequest(c, 10001, "yearMonth 不能为空")
		return
	}

	window, err := h.windowSvc.Get(c.Request.Context(), yearMonth)
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.OK(c, window)
}

// ListWindows 查询全部窗口记录
// GET /api/v1/submission-windows
func (h *WindowHandler) ListWindows(c *gin.Context) {
	list, err := h.windowSvc.List(c.Request.Context())
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetWindow 开启或关闭某月提交窗口（管理员）
// PUT /api/v1/submission-windows
func (h *WindowHandler) SetWindow(c *gin.Context) {
	var req dto.SetWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	window, err := h.windowSvc.Set(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	response.OK(c, window)
}

// ExportCalendar 导出窗口日历（iCalendar 订阅）
// GET /api/v1/submission-windows/calendar.ics
func (h *WindowHandler) ExportCalendar(c *gin.Context) {
	content, err := h.windowSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		h.handleWindowError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="submission-windows.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

// handleWindowError 统一处理提交窗口模块业务错误
func (h *WindowHandler) handleWindowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrYearMonthInvalid):
		response.BadRequest(c, 14001, "月份格式无效，应为 YYYY-MM")
	default:
		response.InternalError(c)
	}
}
