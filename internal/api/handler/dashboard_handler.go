package handler

import (
	"github.com/gin-gonic/gin"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/service"
	"staff-form/backend/pkg/response"
)

// DashboardHandler 管理面板模块 HTTP 处理器
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Overview 管理面板总览（员工行 + 统计 + 周度定稿曲线）
// GET /api/v1/dashboard?station=xxx&grade=xxx&limit=100
func (h *DashboardHandler) Overview(c *gin.Context) {
	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.dashSvc.Overview(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
