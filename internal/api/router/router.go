package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staff-form/backend/config"
	"staff-form/backend/internal/api/handler"
	"staff-form/backend/internal/api/middleware"
	"staff-form/backend/pkg/jwt"
	"staff-form/backend/pkg/redis"
)

// 请求体上限。表单分页含证书元数据列表，1MB 足够
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）。OTP 接口叠加按 IP 限流，
		// 按手机号的发送频控在 Service 层
		auth := v1.Group("/auth")
		{
			otpLimit := middleware.RateLimit(rdb, 30, time.Minute)
			auth.POST("/otp/send", otpLimit, h.Auth.SendOTP)
			auth.POST("/otp/verify", otpLimit, h.Auth.VerifyOTP)
			auth.POST("/password", h.Auth.CreatePassword)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 登记向导（注册流程中用户尚未持有 token，以手机号为主键）
		registration := v1.Group("/registration")
		{
			registration.POST("/personal", h.Registration.SavePersonal)
			registration.POST("/education", h.Registration.SaveEducation)
			registration.POST("/employment", h.Registration.SaveEmployment)
			registration.POST("/others", h.Registration.SaveOthers)
			registration.GET("/stations", h.Registration.ListStations)
			registration.PUT("/drafts", h.Registration.SaveDraft)
			registration.GET("/drafts", h.Registration.GetDraft)
			registration.POST("/done", h.Auth.MarkDone)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 月度提交模块
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("", h.Submission.Submit)
				submissions.GET("", h.Submission.List)
			}

			// 提交窗口：状态查询对所有登录用户开放，管理操作仅管理员
			windows := authorized.Group("/submission-windows")
			{
				windows.GET("", h.Window.ListWindows)
				windows.GET("/calendar.ics", h.Window.ExportCalendar)
				windows.GET("/:yearMonth", h.Window.GetWindow)
				windows.PUT("", middleware.RoleAuth("admin"), h.Window.SetWindow)
			}

			// 管理面板模块（仅管理员）
			admin := authorized.Group("", middleware.RoleAuth("admin"))
			{
				admin.GET("/dashboard", h.Dashboard.Overview)
				admin.GET("/users/completed", h.User.ListCompleted)
				admin.PUT("/users/role", h.User.AssignRole)
				admin.GET("/export/roster", h.Export.ExportRoster)
			}
		}
	}

	return r
}
