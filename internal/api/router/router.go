package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"decanat/config"
	"decanat/internal/api/handler"
	"decanat/internal/api/middleware"
	"decanat/internal/model"
	"decanat/pkg/jwt"
	"decanat/pkg/redis"
)

// HealthCheck 探测下游依赖是否可用
type HealthCheck func(ctx context.Context) error

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时 Token 黑名单与登录限流降级关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, health HealthCheck, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// 避免把 typed nil 传入接口
	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		checker = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				logger.Warn("健康检查失败", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtAuth := middleware.JWTAuth(jwtMgr, checker)

	// guard 在开启 require_auth 时为分组追加认证与角色校验
	guard := func(g *gin.RouterGroup, roles ...model.Role) {
		if !cfg.Feature.RequireAuth {
			return
		}
		g.Use(jwtAuth)
		if len(roles) > 0 {
			names := make([]string, len(roles))
			for i, role := range roles {
				names[i] = string(role)
			}
			g.Use(middleware.RoleAuth(names...))
		}
	}

	api := r.Group("/api")
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.Feature.LoginRateLimit, time.Minute), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/logout", jwtAuth, h.Auth.Logout)
			auth.GET("/me", jwtAuth, h.Auth.Me)
		}

		// 教务模块
		decanat := api.Group("/decanat")
		guard(decanat, model.RoleDecanatWorker)
		{
			decanat.GET("/schedules", h.Decanat.ListSchedules)
			decanat.GET("/schedules/export", h.Decanat.ExportSchedules)
			decanat.POST("/schedule", h.Decanat.CreateSchedule)
			decanat.GET("/schedule/:id", h.Decanat.GetSchedule)
			decanat.PUT("/schedule/:id", h.Decanat.UpdateSchedule)
			decanat.DELETE("/schedule/:id", h.Decanat.DeleteSchedule)

			decanat.GET("/groups", h.Decanat.ListGroups)
			decanat.POST("/groups", h.Decanat.CreateGroup)
			decanat.DELETE("/groups/:id", h.Decanat.DeleteGroup)

			decanat.GET("/teachers", h.Decanat.ListTeachers)
			decanat.POST("/teachers", h.Decanat.CreateTeacher)
			decanat.DELETE("/teachers/:id", h.Decanat.DeleteTeacher)

			decanat.GET("/subjects", h.Decanat.ListSubjects)
			decanat.POST("/subjects", h.Decanat.CreateSubject)
			decanat.DELETE("/subjects/:id", h.Decanat.DeleteSubject)

			decanat.GET("/students", h.Decanat.ListStudents)
			decanat.POST("/students", h.Decanat.CreateStudent)
			decanat.DELETE("/students/:id", h.Decanat.DeleteStudent)

			decanat.GET("/workers", h.Decanat.ListWorkers)
			decanat.POST("/workers", h.Decanat.CreateWorker)
			decanat.DELETE("/workers/:id", h.Decanat.DeleteWorker)

			decanat.GET("/users", h.Decanat.ListUsers)
			decanat.PUT("/users/:id/profile", h.Decanat.LinkUserProfile)
		}

		// 学生模块
		student := api.Group("/student")
		guard(student)
		{
			student.GET("/:id", h.Student.GetStudent)
			student.GET("/:id/schedule", h.Student.GetSchedule)
			student.GET("/:id/schedule/ics", h.Student.GetScheduleCalendar)
			student.GET("/:id/grades", h.Student.GetGrades)
		}

		// 教师模块
		teacher := api.Group("/teacher")
		guard(teacher, model.RoleTeacher, model.RoleDecanatWorker)
		{
			teacher.GET("/exams", h.Teacher.ListAllExams)
			teacher.GET("/students", h.Teacher.ListStudents)
			teacher.GET("/subjects", h.Teacher.ListSubjects)
			teacher.POST("/grade", h.Teacher.AddGrade)
			teacher.PUT("/grade/:id", h.Teacher.UpdateGrade)
			teacher.DELETE("/grade/:id", h.Teacher.DeleteGrade)

			teacher.GET("/:id/schedule", h.Teacher.GetSchedule)
			teacher.GET("/:id/schedule/ics", h.Teacher.GetScheduleCalendar)
			teacher.GET("/:id/grades", h.Teacher.ListGrades)
		}
	}

	return r
}
