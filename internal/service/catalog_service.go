package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"decanat/internal/dto"
	"decanat/internal/model"
	"decanat/internal/repository"
	pkgerrors "decanat/pkg/errors"
)

// ── 基础目录业务错误 ──

var (
	ErrGroupNotFound    = errors.New("班组不存在")
	ErrGroupNameTaken   = errors.New("班组名称已存在")
	ErrGroupHasStudents = errors.New("班组下仍有学生，无法删除")
	ErrTeacherNotFound  = errors.New("教师不存在")
	ErrTeacherInUse     = errors.New("教师仍被课表或成绩引用，无法删除")
	ErrSubjectNotFound  = errors.New("课程不存在")
	ErrSubjectInUse     = errors.New("课程仍被课表或成绩引用，无法删除")
	ErrWorkerNotFound   = errors.New("教务人员不存在")
)

// CatalogService 班组、教师、课程、学生、教务人员的目录管理
type CatalogService interface {
	ListGroups(ctx context.Context) ([]dto.GroupDto, error)
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupDto, error)
	DeleteGroup(ctx context.Context, id int) error

	ListTeachers(ctx context.Context) ([]dto.TeacherDto, error)
	CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDto, error)
	DeleteTeacher(ctx context.Context, id int) error

	ListSubjects(ctx context.Context) ([]dto.SubjectDto, error)
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectDto, error)
	DeleteSubject(ctx context.Context, id int) error

	ListStudents(ctx context.Context) ([]dto.StudentDto, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDto, error)
	// DeleteStudent 删除学生，其成绩与关联账号一并删除
	DeleteStudent(ctx context.Context, id int) error

	ListDecanatWorkers(ctx context.Context) ([]dto.DecanatWorkerDto, error)
	CreateDecanatWorker(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.DecanatWorkerDto, error)
	DeleteDecanatWorker(ctx context.Context, id int) error
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── Group ──────────────────────

func (s *catalogService) ListGroups(ctx context.Context) ([]dto.GroupDto, error) {
	groups, err := s.repo.Group.List(ctx)
	if err != nil {
		s.logger.Error("列出班组失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GroupDto, 0, len(groups))
	for i := range groups {
		result = append(result, toGroupDto(&groups[i]))
	}
	return result, nil
}

func (s *catalogService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupDto, error) {
	group := &model.Group{Name: req.Name}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrGroupNameTaken
		}
		s.logger.Error("创建班组失败", zap.Error(err))
		return nil, err
	}
	out := toGroupDto(group)
	return &out, nil
}

func (s *catalogService) DeleteGroup(ctx context.Context, id int) error {
	if _, err := s.repo.Group.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	n, err := s.repo.Group.CountStudents(ctx, id)
	if err != nil {
		s.logger.Error("统计班组学生失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrGroupHasStudents
	}

	if err := s.repo.Group.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKey(err) {
			return ErrGroupHasStudents
		}
		s.logger.Error("删除班组失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Teacher ──────────────────────

func (s *catalogService) ListTeachers(ctx context.Context) ([]dto.TeacherDto, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeacherDto, 0, len(teachers))
	for i := range teachers {
		result = append(result, toTeacherDto(&teachers[i]))
	}
	return result, nil
}

func (s *catalogService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDto, error) {
	teacher := &model.Teacher{Name: req.Name}
	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	out := toTeacherDto(teacher)
	return &out, nil
}

func (s *catalogService) DeleteTeacher(ctx context.Context, id int) error {
	exists, err := s.repo.Teacher.Exists(ctx, id)
	if err != nil {
		s.logger.Error("查询教师失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if !exists {
		return ErrTeacherNotFound
	}

	n, err := s.repo.Teacher.CountReferences(ctx, id)
	if err != nil {
		s.logger.Error("统计教师引用失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrTeacherInUse
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKey(err) {
			return ErrTeacherInUse
		}
		s.logger.Error("删除教师失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Subject ──────────────────────

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectDto, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectDto, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectDto(&subjects[i]))
	}
	return result, nil
}

func (s *catalogService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectDto, error) {
	subject := &model.Subject{Name: req.Name, Description: req.Description}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}
	out := toSubjectDto(subject)
	return &out, nil
}

func (s *catalogService) DeleteSubject(ctx context.Context, id int) error {
	exists, err := s.repo.Subject.Exists(ctx, id)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if !exists {
		return ErrSubjectNotFound
	}

	n, err := s.repo.Subject.CountReferences(ctx, id)
	if err != nil {
		s.logger.Error("统计课程引用失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrSubjectInUse
	}

	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKey(err) {
			return ErrSubjectInUse
		}
		s.logger.Error("删除课程失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Student ──────────────────────

func (s *catalogService) ListStudents(ctx context.Context) ([]dto.StudentDto, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.StudentDto, 0, len(students))
	for i := range students {
		result = append(result, toStudentDto(&students[i]))
	}
	return result, nil
}

func (s *catalogService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDto, error) {
	group, err := s.repo.Group.GetByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.Int("group_id", req.GroupID), zap.Error(err))
		return nil, err
	}

	student := &model.Student{Name: req.Name, GroupID: group.ID}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsForeignKey(err) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}
	student.Group = group

	out := toStudentDto(student)
	return &out, nil
}

func (s *catalogService) DeleteStudent(ctx context.Context, id int) error {
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("删除学生失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── DecanatWorker ──────────────────────

func (s *catalogService) ListDecanatWorkers(ctx context.Context) ([]dto.DecanatWorkerDto, error) {
	workers, err := s.repo.DecanatWorker.List(ctx)
	if err != nil {
		s.logger.Error("列出教务人员失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DecanatWorkerDto, 0, len(workers))
	for i := range workers {
		result = append(result, toDecanatWorkerDto(&workers[i]))
	}
	return result, nil
}

func (s *catalogService) CreateDecanatWorker(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.DecanatWorkerDto, error) {
	worker := &model.DecanatWorker{Name: req.Name}
	if err := s.repo.DecanatWorker.Create(ctx, worker); err != nil {
		s.logger.Error("创建教务人员失败", zap.Error(err))
		return nil, err
	}
	out := toDecanatWorkerDto(worker)
	return &out, nil
}

func (s *catalogService) DeleteDecanatWorker(ctx context.Context, id int) error {
	if err := s.repo.DecanatWorker.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		s.logger.Error("删除教务人员失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}
