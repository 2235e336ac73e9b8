package handler

import (
	"github.com/gin-gonic/gin"

	"decanat/internal/dto"
	"decanat/internal/service"
	"decanat/pkg/response"
)

// TeacherHandler 教师端 HTTP 处理器
type TeacherHandler struct {
	gradeSvc   service.GradeService
	catalogSvc service.CatalogService
	exportSvc  service.ExportService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(gradeSvc service.GradeService, catalogSvc service.CatalogService, exportSvc service.ExportService) *TeacherHandler {
	return &TeacherHandler{gradeSvc: gradeSvc, catalogSvc: catalogSvc, exportSvc: exportSvc}
}

// GetSchedule 教师课表
// GET /api/teacher/:id/schedule
func (h *TeacherHandler) GetSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.gradeSvc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// GetScheduleCalendar 教师课表 iCalendar 导出
// GET /api/teacher/:id/schedule/ics
func (h *TeacherHandler) GetScheduleCalendar(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	body, filename, err := h.exportSvc.TeacherCalendar(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.File(c, service.ContentTypeCalendar, filename, body)
}

// ListGrades 教师录入的成绩
// GET /api/teacher/:id/grades
func (h *TeacherHandler) ListGrades(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.gradeSvc.ListGrades(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// ListAllExams 全部成绩
// GET /api/teacher/exams
func (h *TeacherHandler) ListAllExams(c *gin.Context) {
	list, err := h.gradeSvc.ListAllExams(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// ListStudents GET /api/teacher/students
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	list, err := h.catalogSvc.ListStudents(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// ListSubjects GET /api/teacher/subjects
func (h *TeacherHandler) ListSubjects(c *gin.Context) {
	list, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// AddGrade 录入成绩
// POST /api/teacher/grade
func (h *TeacherHandler) AddGrade(c *gin.Context) {
	var req dto.CreateExamDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	exam, err := h.gradeSvc.AddGrade(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, exam)
}

// UpdateGrade 修改成绩
// PUT /api/teacher/grade/:id
func (h *TeacherHandler) UpdateGrade(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExamDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.gradeSvc.UpdateGrade(c.Request.Context(), id, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteGrade 删除成绩
// DELETE /api/teacher/grade/:id
func (h *TeacherHandler) DeleteGrade(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gradeSvc.DeleteGrade(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}
