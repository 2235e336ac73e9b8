package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"decanat/internal/dto"
	"decanat/internal/model"
	"decanat/internal/service"
	"decanat/pkg/jwt"
	"decanat/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult    *dto.LoginResult
	loginErr       error
	registerResult *dto.UserInfo
	registerErr    error
	logoutClaims   *jwt.Claims
	logoutErr      error
	meResult       *dto.UserInfo
	meErr          error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.LoginRequest) (*dto.UserInfo, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResult, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.logoutClaims = claims
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ int) (*dto.UserInfo, error) {
	return m.meResult, m.meErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	listResult   []dto.ScheduleDto
	listErr      error
	getResult    *dto.ScheduleDto
	getErr       error
	createResult *dto.ScheduleDto
	createErr    error
	updateErr    error
	deleteErr    error
	lastUpdateID int
}

func (m *mockScheduleService) List(_ context.Context) ([]dto.ScheduleDto, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) GetByID(_ context.Context, _ int) (*dto.ScheduleDto, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleDto) (*dto.ScheduleDto, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) Update(_ context.Context, id int, _ *dto.CreateScheduleDto) error {
	m.lastUpdateID = id
	return m.updateErr
}
func (m *mockScheduleService) Delete(_ context.Context, _ int) error {
	return m.deleteErr
}

// ── Mock CatalogService ──

type mockCatalogService struct {
	groups      []dto.GroupDto
	students    []dto.StudentDto
	subjects    []dto.SubjectDto
	createErr   error
	deleteErr   error
	deletedID   int
	createdName string
}

func (m *mockCatalogService) ListGroups(_ context.Context) ([]dto.GroupDto, error) {
	return m.groups, nil
}
func (m *mockCatalogService) CreateGroup(_ context.Context, req *dto.CreateGroupRequest) (*dto.GroupDto, error) {
	m.createdName = req.Name
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.GroupDto{ID: 1, Name: req.Name}, nil
}
func (m *mockCatalogService) DeleteGroup(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockCatalogService) ListTeachers(_ context.Context) ([]dto.TeacherDto, error) {
	return []dto.TeacherDto{}, nil
}
func (m *mockCatalogService) CreateTeacher(_ context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDto, error) {
	return &dto.TeacherDto{ID: 1, Name: req.Name}, m.createErr
}
func (m *mockCatalogService) DeleteTeacher(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockCatalogService) ListSubjects(_ context.Context) ([]dto.SubjectDto, error) {
	return m.subjects, nil
}
func (m *mockCatalogService) CreateSubject(_ context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectDto, error) {
	return &dto.SubjectDto{ID: 1, Name: req.Name, Description: req.Description}, m.createErr
}
func (m *mockCatalogService) DeleteSubject(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockCatalogService) ListStudents(_ context.Context) ([]dto.StudentDto, error) {
	return m.students, nil
}
func (m *mockCatalogService) CreateStudent(_ context.Context, req *dto.CreateStudentRequest) (*dto.StudentDto, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.StudentDto{ID: 1, Name: req.Name, Group: &dto.GroupDto{ID: req.GroupID}}, nil
}
func (m *mockCatalogService) DeleteStudent(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockCatalogService) ListDecanatWorkers(_ context.Context) ([]dto.DecanatWorkerDto, error) {
	return []dto.DecanatWorkerDto{}, nil
}
func (m *mockCatalogService) CreateDecanatWorker(_ context.Context, req *dto.CreateTeacherRequest) (*dto.DecanatWorkerDto, error) {
	return &dto.DecanatWorkerDto{ID: 1, Name: req.Name}, m.createErr
}
func (m *mockCatalogService) DeleteDecanatWorker(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}

// ── Mock UserService ──

type mockUserService struct {
	linkResult *dto.UserInfo
	linkErr    error
}

func (m *mockUserService) List(_ context.Context) ([]dto.UserInfo, error) {
	return []dto.UserInfo{}, nil
}
func (m *mockUserService) LinkProfile(_ context.Context, _ int, _ *dto.LinkProfileRequest) (*dto.UserInfo, error) {
	return m.linkResult, m.linkErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	student  *dto.StudentDto
	schedule []dto.ScheduleDto
	grades   []dto.ExamDto
	err      error
}

func (m *mockStudentService) GetStudent(_ context.Context, _ int) (*dto.StudentDto, error) {
	return m.student, m.err
}
func (m *mockStudentService) GetSchedule(_ context.Context, _ int) ([]dto.ScheduleDto, error) {
	return m.schedule, m.err
}
func (m *mockStudentService) GetGrades(_ context.Context, _ int) ([]dto.ExamDto, error) {
	return m.grades, m.err
}

// ── Mock GradeService ──

type mockGradeService struct {
	addResult *dto.ExamDto
	addErr    error
	updateErr error
	deleteErr error
	listErr   error
}

func (m *mockGradeService) GetSchedule(_ context.Context, _ int) ([]dto.ScheduleDto, error) {
	return []dto.ScheduleDto{}, m.listErr
}
func (m *mockGradeService) AddGrade(_ context.Context, _ *dto.CreateExamDto) (*dto.ExamDto, error) {
	return m.addResult, m.addErr
}
func (m *mockGradeService) UpdateGrade(_ context.Context, _ int, _ *dto.UpdateExamDto) error {
	return m.updateErr
}
func (m *mockGradeService) DeleteGrade(_ context.Context, _ int) error {
	return m.deleteErr
}
func (m *mockGradeService) ListGrades(_ context.Context, _ int) ([]dto.ExamDto, error) {
	return []dto.ExamDto{}, m.listErr
}
func (m *mockGradeService) ListAllExams(_ context.Context) ([]dto.ExamDto, error) {
	return []dto.ExamDto{}, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	body     []byte
	filename string
	err      error
}

func (m *mockExportService) ExportSchedules(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) StudentCalendar(_ context.Context, _ int) ([]byte, string, error) {
	return m.body, m.filename, m.err
}
func (m *mockExportService) TeacherCalendar(_ context.Context, _ int) ([]byte, string, error) {
	return m.body, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set(CtxUserID, 1)
	c.Set(CtxRole, string(model.RoleDecanatWorker))
	c.Set(CtxClaims, &jwt.Claims{UserID: 1, Role: string(model.RoleDecanatWorker)})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// serve 注册单个路由并执行请求
func serve(method, route, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r := gin.New()
	r.Handle(method, route, h)
	r.ServeHTTP(w, req)
	return w
}

func newTestDecanatHandler() (*DecanatHandler, *mockScheduleService, *mockCatalogService, *mockUserService, *mockExportService) {
	sched := &mockScheduleService{}
	cat := &mockCatalogService{}
	users := &mockUserService{}
	exp := &mockExportService{}
	return NewDecanatHandler(sched, cat, users, exp), sched, cat, users, exp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	sid := 5
	mock := &mockAuthService{loginResult: &dto.LoginResult{
		User:        dto.UserInfo{ID: 1, Username: "petrov", Role: "Student", StudentID: &sid},
		AccessToken: "test-access-token",
		ExpiresIn:   3600,
	}}
	h := NewAuthHandler(mock)

	w := serve("POST", "/api/auth/login", "/api/auth/login",
		jsonBody(dto.LoginRequest{Username: "petrov", Password: "pw"}), h.Login)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get(HeaderAccessToken); got != "test-access-token" {
		t.Errorf("expected token header, got %q", got)
	}

	// 响应体为 UserInfo 本身，未关联的 ID 输出 null
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["username"] != "petrov" || body["studentId"] != float64(5) {
		t.Errorf("unexpected body: %v", body)
	}
	if v, ok := body["teacherId"]; !ok || v != nil {
		t.Errorf("teacherId should be present and null, got %v", v)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/api/auth/login", "/api/auth/login",
		jsonBody(dto.LoginRequest{Username: "petrov", Password: "wrong"}), h.Login)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/api/auth/login", "/api/auth/login", bytes.NewReader([]byte("invalid json")), h.Login)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrUsernameTaken})

	w := serve("POST", "/api/auth/register", "/api/auth/register",
		jsonBody(dto.LoginRequest{Username: "petrov", Password: "pw"}), h.Register)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrPasswordTooLong})

	// 参数绑定按字符计数放行，由 Service 按字节拒绝
	w := serve("POST", "/api/auth/register", "/api/auth/register",
		jsonBody(dto.LoginRequest{Username: "petrov", Password: strings.Repeat("я", 72)}), h.Register)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11007 {
		t.Errorf("expected error code 11007, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/api/auth/logout", "/api/auth/logout", nil, func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if mock.logoutClaims == nil || mock.logoutClaims.UserID != 1 {
		t.Error("expected claims to be passed to service")
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("GET", "/api/auth/me", "/api/auth/me", nil, h.Me)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DecanatHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDecanatHandler_ListSchedules_RawArray(t *testing.T) {
	h, sched, _, _, _ := newTestDecanatHandler()
	sched.listResult = []dto.ScheduleDto{{ID: 1, Date: model.NewDate(2025, 1, 10), PairNumber: 2}}

	w := serve("GET", "/api/decanat/schedules", "/api/decanat/schedules", nil, h.ListSchedules)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("body should be a raw array: %v", err)
	}
	if len(list) != 1 || list[0]["date"] != "2025-01-10" || list[0]["pairNumber"] != float64(2) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestDecanatHandler_CreateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  int
	}{
		{"created", nil, http.StatusCreated, 0},
		{"invalid pair", service.ErrInvalidPairNumber, http.StatusBadRequest, 12002},
		{"conflict", service.ErrScheduleConflict, http.StatusBadRequest, 12004},
		{"group missing", service.ErrGroupNotFound, http.StatusNotFound, 13001},
		{"teacher missing", service.ErrTeacherNotFound, http.StatusNotFound, 13004},
		{"subject missing", service.ErrSubjectNotFound, http.StatusNotFound, 13006},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, sched, _, _, _ := newTestDecanatHandler()
			sched.createResult = &dto.ScheduleDto{ID: 10}
			sched.createErr = tt.err

			body := `{"groupId":1,"teacherId":1,"subjectId":1,"date":"2025-01-10","pairNumber":2,"classroom":"101"}`
			w := serve("POST", "/api/decanat/schedule", "/api/decanat/schedule", bytes.NewReader([]byte(body)), h.CreateSchedule)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantErr != 0 {
				if resp := parseResponse(w); resp.Code != tt.wantErr {
					t.Errorf("expected error code %d, got %d", tt.wantErr, resp.Code)
				}
			}
		})
	}
}

func TestDecanatHandler_CreateSchedule_BadDate(t *testing.T) {
	h, _, _, _, _ := newTestDecanatHandler()

	body := `{"groupId":1,"teacherId":1,"subjectId":1,"date":"10.01.2025","pairNumber":2}`
	w := serve("POST", "/api/decanat/schedule", "/api/decanat/schedule", bytes.NewReader([]byte(body)), h.CreateSchedule)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDecanatHandler_UpdateSchedule(t *testing.T) {
	h, sched, _, _, _ := newTestDecanatHandler()

	body := `{"groupId":1,"teacherId":1,"subjectId":1,"date":"2025-01-10","pairNumber":2}`
	w := serve("PUT", "/api/decanat/schedule/:id", "/api/decanat/schedule/7", bytes.NewReader([]byte(body)), h.UpdateSchedule)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if sched.lastUpdateID != 7 {
		t.Errorf("expected id 7, got %d", sched.lastUpdateID)
	}

	sched.updateErr = service.ErrScheduleNotFound
	w = serve("PUT", "/api/decanat/schedule/:id", "/api/decanat/schedule/7", bytes.NewReader([]byte(body)), h.UpdateSchedule)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = serve("PUT", "/api/decanat/schedule/:id", "/api/decanat/schedule/abc", bytes.NewReader([]byte(body)), h.UpdateSchedule)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestDecanatHandler_DeleteAndGetSchedule(t *testing.T) {
	h, sched, _, _, _ := newTestDecanatHandler()

	w := serve("DELETE", "/api/decanat/schedule/:id", "/api/decanat/schedule/3", nil, h.DeleteSchedule)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}

	sched.getErr = service.ErrScheduleNotFound
	w = serve("GET", "/api/decanat/schedule/:id", "/api/decanat/schedule/3", nil, h.GetSchedule)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestDecanatHandler_DeleteGroup_Restricted(t *testing.T) {
	h, _, cat, _, _ := newTestDecanatHandler()
	cat.deleteErr = service.ErrGroupHasStudents

	w := serve("DELETE", "/api/decanat/groups/:id", "/api/decanat/groups/4", nil, h.DeleteGroup)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if cat.deletedID != 4 {
		t.Errorf("expected id 4, got %d", cat.deletedID)
	}
}

func TestDecanatHandler_CreateGroup_Validation(t *testing.T) {
	h, _, cat, _, _ := newTestDecanatHandler()

	w := serve("POST", "/api/decanat/groups", "/api/decanat/groups", jsonBody(map[string]string{}), h.CreateGroup)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", w.Code)
	}

	w = serve("POST", "/api/decanat/groups", "/api/decanat/groups", jsonBody(dto.CreateGroupRequest{Name: "ИВТ-21"}), h.CreateGroup)
	if w.Code != http.StatusCreated || cat.createdName != "ИВТ-21" {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestDecanatHandler_LinkUserProfile(t *testing.T) {
	h, _, _, users, _ := newTestDecanatHandler()
	users.linkErr = service.ErrProfileTaken

	w := serve("PUT", "/api/decanat/users/:id/profile", "/api/decanat/users/2/profile",
		jsonBody(dto.LinkProfileRequest{Role: "Teacher", ProfileID: 3}), h.LinkUserProfile)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}

	w = serve("PUT", "/api/decanat/users/:id/profile", "/api/decanat/users/2/profile",
		jsonBody(dto.LinkProfileRequest{Role: "Admin", ProfileID: 3}), h.LinkUserProfile)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestDecanatHandler_ExportSchedules(t *testing.T) {
	h, _, _, _, exp := newTestDecanatHandler()
	exp.buf = bytes.NewBufferString("xlsx-bytes")
	exp.filename = "schedules_20250110.xlsx"

	w := serve("GET", "/api/decanat/schedules/export", "/api/decanat/schedules/export", nil, h.ExportSchedules)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != service.ContentTypeXLSX {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="schedules_20250110.xlsx"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_NotFound(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{err: service.ErrStudentNotFound}, &mockExportService{err: service.ErrStudentNotFound})

	routes := []struct {
		route  string
		target string
		fn     gin.HandlerFunc
	}{
		{"/api/student/:id", "/api/student/9", h.GetStudent},
		{"/api/student/:id/schedule", "/api/student/9/schedule", h.GetSchedule},
		{"/api/student/:id/grades", "/api/student/9/grades", h.GetGrades},
		{"/api/student/:id/schedule/ics", "/api/student/9/schedule/ics", h.GetScheduleCalendar},
	}
	for _, rt := range routes {
		w := serve("GET", rt.route, rt.target, nil, rt.fn)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", rt.target, w.Code)
		}
		if resp := parseResponse(w); resp.Code != 14001 {
			t.Errorf("%s: expected error code 14001, got %d", rt.target, resp.Code)
		}
	}
}

func TestStudentHandler_GetStudent(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{
		student: &dto.StudentDto{ID: 9, Name: "Петров", Group: &dto.GroupDto{ID: 1, Name: "ИВТ-21"}},
	}, &mockExportService{})

	w := serve("GET", "/api/student/:id", "/api/student/9", nil, h.GetStudent)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got dto.StudentDto
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Group == nil || got.Group.Name != "ИВТ-21" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestStudentHandler_Calendar(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{}, &mockExportService{
		body:     []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "student_9.ics",
	})

	w := serve("GET", "/api/student/:id/schedule/ics", "/api/student/9/schedule/ics", nil, h.GetScheduleCalendar)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != service.ContentTypeCalendar {
		t.Errorf("unexpected content type %q", ct)
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler Tests
// ═══════════════════════════════════════════════════════════

func newTestTeacherHandler(grade *mockGradeService) *TeacherHandler {
	return NewTeacherHandler(grade, &mockCatalogService{subjects: []dto.SubjectDto{{ID: 1, Name: "Физика"}}}, &mockExportService{})
}

func TestTeacherHandler_AddGrade(t *testing.T) {
	h := newTestTeacherHandler(&mockGradeService{addResult: &dto.ExamDto{ID: 1, ExamScore: 0}})

	w := serve("POST", "/api/teacher/grade", "/api/teacher/grade",
		bytes.NewReader([]byte(`{"studentId":1,"teacherId":1,"subjectId":1,"examScore":0}`)), h.AddGrade)
	if w.Code != http.StatusCreated {
		t.Errorf("score 0 should be accepted, got %d", w.Code)
	}

	w = serve("POST", "/api/teacher/grade", "/api/teacher/grade",
		bytes.NewReader([]byte(`{"studentId":1,"teacherId":1,"subjectId":1}`)), h.AddGrade)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing score should be rejected, got %d", w.Code)
	}
}

func TestTeacherHandler_AddGrade_Errors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  int
	}{
		{service.ErrInvalidExamScore, http.StatusBadRequest, 15002},
		{service.ErrStudentNotFound, http.StatusNotFound, 14001},
		{service.ErrTeacherNotFound, http.StatusNotFound, 13004},
		{service.ErrSubjectNotFound, http.StatusNotFound, 13006},
	}
	for _, tt := range tests {
		h := newTestTeacherHandler(&mockGradeService{addErr: tt.err})
		w := serve("POST", "/api/teacher/grade", "/api/teacher/grade",
			bytes.NewReader([]byte(`{"studentId":1,"teacherId":1,"subjectId":1,"examScore":101}`)), h.AddGrade)
		if w.Code != tt.wantCode {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantCode, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tt.wantErr {
			t.Errorf("%v: expected error code %d, got %d", tt.err, tt.wantErr, resp.Code)
		}
	}
}

func TestTeacherHandler_UpdateAndDeleteGrade(t *testing.T) {
	h := newTestTeacherHandler(&mockGradeService{})

	w := serve("PUT", "/api/teacher/grade/:id", "/api/teacher/grade/1", jsonBody(map[string]int{"examScore": 77}), h.UpdateGrade)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}

	h = newTestTeacherHandler(&mockGradeService{deleteErr: service.ErrExamNotFound})
	w = serve("DELETE", "/api/teacher/grade/:id", "/api/teacher/grade/1", nil, h.DeleteGrade)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTeacherHandler_ListSubjects(t *testing.T) {
	h := newTestTeacherHandler(&mockGradeService{})

	w := serve("GET", "/api/teacher/subjects", "/api/teacher/subjects", nil, h.ListSubjects)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []dto.SubjectDto
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Name != "Физика" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestTeacherHandler_GetSchedule_NotFound(t *testing.T) {
	h := newTestTeacherHandler(&mockGradeService{listErr: service.ErrTeacherNotFound})

	w := serve("GET", "/api/teacher/:id/schedule", "/api/teacher/5/schedule", nil, h.GetSchedule)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
