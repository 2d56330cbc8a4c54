package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/service"
	"staff-form/backend/pkg/response"
)

// RegistrationHandler 登记表单模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// SavePersonal 保存个人资料分页
// POST /api/v1/registration/personal
func (h *RegistrationHandler) SavePersonal(c *gin.Context) {
	var req dto.SavePersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.regSvc.SavePersonal(c.Request.Context(), &req); err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, nil)
}

// SaveEducation 保存教育背景分页
// POST /api/v1/registration/education
func (h *RegistrationHandler) SaveEducation(c *gin.Context) {
	var req dto.SaveEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.regSvc.SaveEducation(c.Request.Context(), &req); err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, nil)
}

// SaveEmployment 保存雇佣信息分页
// POST /api/v1/registration/employment
func (h *RegistrationHandler) SaveEmployment(c *gin.Context) {
	var req dto.SaveEmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.regSvc.SaveEmployment(c.Request.Context(), &req); err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, nil)
}

// SaveOthers 保存其他资料分页（证书列表）
// POST /api/v1/registration/others
func (h *RegistrationHandler) SaveOthers(c *gin.Context) {
	var req dto.SaveOthersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.regSvc.SaveOthers(c.Request.Context(), &req); err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, nil)
}

// SaveDraft 暂存表单草稿
// PUT /api/v1/registration/drafts
func (h *RegistrationHandler) SaveDraft(c *gin.Context) {
	var req dto.SaveFormDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	draft, err := h.regSvc.SaveDraft(c.Request.Context(), &req)
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, draft)
}

// GetDraft 读取表单草稿
// GET /api/v1/registration/drafts?phone=xxx&page=personal
func (h *RegistrationHandler) GetDraft(c *gin.Context) {
	phone := c.Query("phone")
	page := c.Query("page")
	if phone == "" || page == "" {
		response.BadRequest(c, 10001, "phone 与 page 不能为空")
		return
	}

	draft, err := h.regSvc.GetDraft(c.Request.Context(), phone, page)
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}

	response.OK(c, draft)
}

// ListStations 标准网点下拉数据
// GET /api/v1/registration/stations
func (h *RegistrationHandler) ListStations(c *gin.Context) {
	list, err := h.regSvc.ListStations(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleRegistrationError 统一处理登记表单模块业务错误
func (h *RegistrationHandler) handleRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在，请先完成手机号验证")
	case errors.Is(err, service.ErrDraftNotFound):
		response.NotFound(c, 12002, "表单草稿不存在")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 12003, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
