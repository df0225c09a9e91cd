package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/alimovshaxzod89/SMS/internal/middleware"
	"github.com/alimovshaxzod89/SMS/internal/models"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Auth          *AuthHandler
	Grades        *GradeHandler
	Classes       *ClassHandler
	Subjects      *SubjectHandler
	Lessons       *LessonHandler
	Exams         *ExamHandler
	Assignments   *AssignmentHandler
	Teachers      *TeacherHandler
	Students      *StudentHandler
	Parents       *ParentHandler
	Announcements *AnnouncementHandler
	Events        *EventHandler
	Statistics    *StatisticsHandler
}

// RegisterRoutes mounts the API. authenticate runs on every route except
// login and must leave claims under middleware.ContextUserKey.
func RegisterRoutes(r gin.IRouter, prefix string, h Handlers, authenticate gin.HandlerFunc) {
	api := r.Group(prefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(authenticate)

	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	anyone := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent)

	auth := secured.Group("/auth")
	{
		auth.GET("/me", h.Auth.Me)
		auth.PUT("/updatepassword", h.Auth.UpdatePassword)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/logout-all", h.Auth.LogoutAll)
	}

	grades := secured.Group("/grades")
	{
		grades.GET("", anyone, h.Grades.List)
		grades.GET("/:id", anyone, h.Grades.Get)
		grades.POST("", admin, h.Grades.Create)
		grades.PUT("/:id", admin, h.Grades.Update)
		grades.DELETE("/:id", admin, h.Grades.Delete)
	}

	classes := secured.Group("/classes")
	{
		classes.GET("", staff, h.Classes.List)
		classes.GET("/:id", staff, h.Classes.Get)
		classes.POST("", admin, h.Classes.Create)
		classes.PUT("/:id", admin, h.Classes.Update)
		classes.DELETE("/:id", admin, h.Classes.Delete)
	}

	subjects := secured.Group("/subjects")
	{
		subjects.GET("", anyone, h.Subjects.List)
		subjects.GET("/:id", anyone, h.Subjects.Get)
		subjects.POST("", admin, h.Subjects.Create)
		subjects.PUT("/:id", admin, h.Subjects.Update)
		subjects.DELETE("/:id", admin, h.Subjects.Delete)
	}

	lessons := secured.Group("/lessons")
	{
		lessons.GET("", staff, h.Lessons.List)
		lessons.GET("/:id", staff, h.Lessons.Get)
		lessons.POST("", admin, h.Lessons.Create)
		lessons.PUT("/:id", admin, h.Lessons.Update)
		lessons.DELETE("/:id", admin, h.Lessons.Delete)
	}

	exams := secured.Group("/exams")
	{
		exams.GET("", anyone, h.Exams.List)
		exams.GET("/export", anyone, h.Exams.Export)
		exams.GET("/:id", anyone, h.Exams.Get)
		exams.POST("", admin, h.Exams.Create)
		exams.PUT("/:id", admin, h.Exams.Update)
		exams.DELETE("/:id", admin, h.Exams.Delete)
	}

	assignments := secured.Group("/assignments")
	{
		assignments.GET("", anyone, h.Assignments.List)
		assignments.GET("/:id", anyone, h.Assignments.Get)
		assignments.POST("", admin, h.Assignments.Create)
		assignments.PUT("/:id", admin, h.Assignments.Update)
		assignments.DELETE("/:id", admin, h.Assignments.Delete)
	}

	// Non-admin roles may only update their own account.
	teachers := secured.Group("/teachers")
	{
		teachers.GET("", staff, h.Teachers.List)
		teachers.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleStudent), h.Teachers.Get)
		teachers.POST("", admin, h.Teachers.Create)
		teachers.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), h.Teachers.Update)
		teachers.DELETE("/:id", admin, h.Teachers.Delete)
	}

	students := secured.Group("/students")
	{
		students.GET("", staff, h.Students.List)
		students.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleStudent), h.Students.Get)
		students.POST("", admin, h.Students.Create)
		students.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), h.Students.Update)
		students.DELETE("/:id", admin, h.Students.Delete)
	}

	parents := secured.Group("/parents")
	{
		parents.GET("", staff, h.Parents.List)
		parents.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleParent), h.Parents.Get)
		parents.POST("", admin, h.Parents.Create)
		parents.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.Self), h.Parents.Update)
		parents.DELETE("/:id", admin, h.Parents.Delete)
	}

	announcements := secured.Group("/announcements")
	{
		announcements.GET("", anyone, h.Announcements.List)
		announcements.GET("/:id", anyone, h.Announcements.Get)
		announcements.POST("", admin, h.Announcements.Create)
		announcements.PUT("/:id", admin, h.Announcements.Update)
		announcements.DELETE("/:id", admin, h.Announcements.Delete)
	}

	events := secured.Group("/events")
	{
		events.GET("", anyone, h.Events.List)
		events.GET("/:id", anyone, h.Events.Get)
		events.POST("", admin, h.Events.Create)
		events.PUT("/:id", admin, h.Events.Update)
		events.DELETE("/:id", admin, h.Events.Delete)
	}

	statistics := secured.Group("/statistics", admin)
	{
		statistics.GET("/counts", h.Statistics.Counts)
		statistics.GET("/system", h.Statistics.System)
	}
}

// RegisterSystemRoutes mounts health, readiness and Prometheus endpoints.
func RegisterSystemRoutes(r gin.IRouter, h *MetricsHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}
