package handler

import (
	"github.com/gin-gonic/gin"

	"decanat/internal/service"
	"decanat/pkg/response"
)

// StudentHandler 学生端 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	exportSvc  service.ExportService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, exportSvc service.ExportService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, exportSvc: exportSvc}
}

// GetStudent 学生信息（含班组）
// GET /api/student/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	student, err := h.studentSvc.GetStudent(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, student)
}

// GetSchedule 学生所在班组的课表
// GET /api/student/:id/schedule
func (h *StudentHandler) GetSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.studentSvc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// GetScheduleCalendar 课表 iCalendar 导出
// GET /api/student/:id/schedule/ics
func (h *StudentHandler) GetScheduleCalendar(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	body, filename, err := h.exportSvc.StudentCalendar(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.File(c, service.ContentTypeCalendar, filename, body)
}

// GetGrades 学生成绩
// GET /api/student/:id/grades
func (h *StudentHandler) GetGrades(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.studentSvc.GetGrades(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}
