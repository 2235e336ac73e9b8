package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"decanat/internal/dto"
	"decanat/internal/service"
	"decanat/pkg/response"
)

// DecanatHandler 教务端 HTTP 处理器：课表维护、基础目录、账号关联、导出
type DecanatHandler struct {
	scheduleSvc service.ScheduleService
	catalogSvc  service.CatalogService
	userSvc     service.UserService
	exportSvc   service.ExportService
}

// NewDecanatHandler 创建 DecanatHandler
func NewDecanatHandler(
	scheduleSvc service.ScheduleService,
	catalogSvc service.CatalogService,
	userSvc service.UserService,
	exportSvc service.ExportService,
) *DecanatHandler {
	return &DecanatHandler{
		scheduleSvc: scheduleSvc,
		catalogSvc:  catalogSvc,
		userSvc:     userSvc,
		exportSvc:   exportSvc,
	}
}

// ────────────────────── 课表 ──────────────────────

// ListSchedules 全部课表
// GET /api/decanat/schedules
func (h *DecanatHandler) ListSchedules(c *gin.Context) {
	list, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// GetSchedule 课表详情
// GET /api/decanat/schedule/:id
func (h *DecanatHandler) GetSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, schedule)
}

// CreateSchedule 新增课表
// POST /api/decanat/schedule
func (h *DecanatHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, schedule)
}

// UpdateSchedule 修改课表
// PUT /api/decanat/schedule/:id
func (h *DecanatHandler) UpdateSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateScheduleDto
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.scheduleSvc.Update(c.Request.Context(), id, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteSchedule 删除课表
// DELETE /api/decanat/schedule/:id
func (h *DecanatHandler) DeleteSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// ExportSchedules 导出全部课表为 Excel
// GET /api/decanat/schedules/export
func (h *DecanatHandler) ExportSchedules(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSchedules(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.File(c, service.ContentTypeXLSX, filename, buf.Bytes())
}

// ────────────────────── 班组 ──────────────────────

// ListGroups GET /api/decanat/groups
func (h *DecanatHandler) ListGroups(c *gin.Context) {
	list, err := h.catalogSvc.ListGroups(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateGroup POST /api/decanat/groups
func (h *DecanatHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.catalogSvc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, group)
}

// DeleteGroup DELETE /api/decanat/groups/:id
func (h *DecanatHandler) DeleteGroup(c *gin.Context) {
	h.deleteByID(c, h.catalogSvc.DeleteGroup)
}

// ────────────────────── 教师 ──────────────────────

// ListTeachers GET /api/decanat/teachers
func (h *DecanatHandler) ListTeachers(c *gin.Context) {
	list, err := h.catalogSvc.ListTeachers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateTeacher POST /api/decanat/teachers
func (h *DecanatHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.catalogSvc.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, teacher)
}

// DeleteTeacher DELETE /api/decanat/teachers/:id
func (h *DecanatHandler) DeleteTeacher(c *gin.Context) {
	h.deleteByID(c, h.catalogSvc.DeleteTeacher)
}

// ────────────────────── 课程 ──────────────────────

// ListSubjects GET /api/decanat/subjects
func (h *DecanatHandler) ListSubjects(c *gin.Context) {
	list, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateSubject POST /api/decanat/subjects
func (h *DecanatHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.catalogSvc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, subject)
}

// DeleteSubject DELETE /api/decanat/subjects/:id
func (h *DecanatHandler) DeleteSubject(c *gin.Context) {
	h.deleteByID(c, h.catalogSvc.DeleteSubject)
}

// ────────────────────── 学生 ──────────────────────

// ListStudents GET /api/decanat/students
func (h *DecanatHandler) ListStudents(c *gin.Context) {
	list, err := h.catalogSvc.ListStudents(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateStudent POST /api/decanat/students
func (h *DecanatHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.catalogSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, student)
}

// DeleteStudent DELETE /api/decanat/students/:id
func (h *DecanatHandler) DeleteStudent(c *gin.Context) {
	h.deleteByID(c, h.catalogSvc.DeleteStudent)
}

// ────────────────────── 教务人员 ──────────────────────

// ListWorkers GET /api/decanat/workers
func (h *DecanatHandler) ListWorkers(c *gin.Context) {
	list, err := h.catalogSvc.ListDecanatWorkers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateWorker POST /api/decanat/workers
func (h *DecanatHandler) CreateWorker(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	worker, err := h.catalogSvc.CreateDecanatWorker(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, worker)
}

// DeleteWorker DELETE /api/decanat/workers/:id
func (h *DecanatHandler) DeleteWorker(c *gin.Context) {
	h.deleteByID(c, h.catalogSvc.DeleteDecanatWorker)
}

// ────────────────────── 账号 ──────────────────────

// ListUsers GET /api/decanat/users
func (h *DecanatHandler) ListUsers(c *gin.Context) {
	list, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// LinkUserProfile 设置账号关联的学生/教师/教务人员
// PUT /api/decanat/users/:id/profile
func (h *DecanatHandler) LinkUserProfile(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.LinkProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	info, err := h.userSvc.LinkProfile(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, info)
}

// ── 辅助 ──

func (h *DecanatHandler) deleteByID(c *gin.Context, del func(ctx context.Context, id int) error) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := del(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}
