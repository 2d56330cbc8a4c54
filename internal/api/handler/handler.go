package handler

import "staff-form/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Submission   *SubmissionHandler
	Window       *WindowHandler
	Dashboard    *DashboardHandler
	User         *UserHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Registration: NewRegistrationHandler(svc.Registration),
		Submission:   NewSubmissionHandler(svc.Submission),
		Window:       NewWindowHandler(svc.SubmissionWindow),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		User:         NewUserHandler(svc.User),
		Export:       NewExportHandler(svc.Export),
	}
}
