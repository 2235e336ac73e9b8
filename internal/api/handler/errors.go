package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"decanat/internal/service"
	"decanat/pkg/response"
)

// serviceError 业务错误 → HTTP 状态码 + 业务码
type serviceError struct {
	err    error
	status int
	code   int
}

// 11xxx 认证/账号  12xxx 课表  13xxx 基础目录  14xxx 学生  15xxx 成绩  16xxx 导出
var serviceErrors = []serviceError{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, 11001},
	{service.ErrUsernameTaken, http.StatusBadRequest, 11002},
	{service.ErrUserNotFound, http.StatusNotFound, 11003},
	{service.ErrInvalidRole, http.StatusBadRequest, 11004},
	{service.ErrProfileNotFound, http.StatusNotFound, 11005},
	{service.ErrProfileTaken, http.StatusConflict, 11006},
	{service.ErrPasswordTooLong, http.StatusBadRequest, 11007},

	{service.ErrScheduleNotFound, http.StatusNotFound, 12001},
	{service.ErrInvalidPairNumber, http.StatusBadRequest, 12002},
	{service.ErrDateRequired, http.StatusBadRequest, 12003},
	{service.ErrScheduleConflict, http.StatusBadRequest, 12004},
	{service.ErrScheduleRefNotFound, http.StatusNotFound, 12005},

	{service.ErrGroupNotFound, http.StatusNotFound, 13001},
	{service.ErrGroupNameTaken, http.StatusBadRequest, 13002},
	{service.ErrGroupHasStudents, http.StatusConflict, 13003},
	{service.ErrTeacherNotFound, http.StatusNotFound, 13004},
	{service.ErrTeacherInUse, http.StatusConflict, 13005},
	{service.ErrSubjectNotFound, http.StatusNotFound, 13006},
	{service.ErrSubjectInUse, http.StatusConflict, 13007},
	{service.ErrWorkerNotFound, http.StatusNotFound, 13008},

	{service.ErrStudentNotFound, http.StatusNotFound, 14001},

	{service.ErrExamNotFound, http.StatusNotFound, 15001},
	{service.ErrInvalidExamScore, http.StatusBadRequest, 15002},
	{service.ErrExamRefNotFound, http.StatusNotFound, 15003},

	{service.ErrExportGenerateFail, http.StatusInternalServerError, 16001},
}

// handleServiceError 统一处理业务错误，未识别的错误一律 500
func handleServiceError(c *gin.Context, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			response.Error(c, se.status, se.code, se.err.Error())
			return
		}
	}
	response.InternalError(c)
}
