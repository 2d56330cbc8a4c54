package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/service"
	"staff-form/backend/pkg/response"
)

// SubmissionHandler 月度提交模块 HTTP 处理器
type SubmissionHandler struct {
	subSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(subSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc}
}

// Submit 暂存或定稿当月记录（action 区分）
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.subSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, result)
}

// List 查询本人提交记录
// GET /api/v1/submissions?year_month=2026-08&status=FINAL
func (h *SubmissionHandler) List(c *gin.Context) {
	var req dto.ListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.subSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleSubmissionError 统一处理月度提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrYearMonthInvalid):
		response.BadRequest(c, 13001, "月份格式无效，应为 YYYY-MM")
	case errors.Is(err, service.ErrSubmissionWindowClosed):
		response.Forbidden(c, 13002, "本月提交窗口未开放")
	case errors.Is(err, service.ErrSubmissionFinalized):
		response.Conflict(c, 13003, "本月记录已定稿，不可修改")
	case errors.Is(err, service.ErrSubmissionConflict):
		response.Conflict(c, 13004, "提交冲突，请重试")
	default:
		response.InternalError(c)
	}
}
