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

// ── 成绩模块业务错误 ──

var (
	ErrExamNotFound    = errors.New("成绩记录不存在")
	ErrExamRefNotFound = errors.New("成绩引用的学生、教师或课程不存在")
)

// GradeService 教师端业务接口：课表查询与成绩录入
type GradeService interface {
	GetSchedule(ctx context.Context, teacherID int) ([]dto.ScheduleDto, error)
	AddGrade(ctx context.Context, req *dto.CreateExamDto) (*dto.ExamDto, error)
	UpdateGrade(ctx context.Context, id int, req *dto.UpdateExamDto) error
	DeleteGrade(ctx context.Context, id int) error
	// ListGrades 指定教师录入的成绩，最新在前
	ListGrades(ctx context.Context, teacherID int) ([]dto.ExamDto, error)
	ListAllExams(ctx context.Context) ([]dto.ExamDto, error)
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger}
}

// ────────────────────── Schedule ──────────────────────

func (s *gradeService) GetSchedule(ctx context.Context, teacherID int) ([]dto.ScheduleDto, error) {
	if err := s.ensureTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{TeacherID: teacherID})
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Int("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toScheduleDtos(schedules), nil
}

// ────────────────────── AddGrade ──────────────────────

func (s *gradeService) AddGrade(ctx context.Context, req *dto.CreateExamDto) (*dto.ExamDto, error) {
	// 1. 成绩范围（先于任何查询）
	if err := ValidateExamScore(*req.ExamScore); err != nil {
		return nil, err
	}

	// 2. 引用存在性：学生 → 教师 → 课程
	exists, err := s.repo.Student.Exists(ctx, req.StudentID)
	if err != nil {
		s.logger.Error("查询学生失败", zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrStudentNotFound
	}
	if err := s.ensureTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	exists, err = s.repo.Subject.Exists(ctx, req.SubjectID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Int("subject_id", req.SubjectID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrSubjectNotFound
	}

	// 3. 写入
	exam := &model.Exam{
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		ExamScore: *req.ExamScore,
	}
	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		if pkgerrors.IsForeignKey(err) {
			return nil, ErrExamRefNotFound
		}
		s.logger.Error("录入成绩失败", zap.Error(err))
		return nil, err
	}

	// 4. 回读关联
	created, err := s.repo.Exam.GetByID(ctx, exam.ID)
	if err != nil {
		s.logger.Error("回读成绩失败", zap.Int("id", exam.ID), zap.Error(err))
		return nil, err
	}
	out := toExamDto(created)
	return &out, nil
}

// ────────────────────── UpdateGrade ──────────────────────

func (s *gradeService) UpdateGrade(ctx context.Context, id int, req *dto.UpdateExamDto) error {
	if err := ValidateExamScore(*req.ExamScore); err != nil {
		return err
	}
	if err := s.ensureExam(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Exam.UpdateScore(ctx, id, *req.ExamScore); err != nil {
		s.logger.Error("更新成绩失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── DeleteGrade ──────────────────────

func (s *gradeService) DeleteGrade(ctx context.Context, id int) error {
	if err := s.ensureExam(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Exam.Delete(ctx, id); err != nil {
		s.logger.Error("删除成绩失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Lists ──────────────────────

func (s *gradeService) ListGrades(ctx context.Context, teacherID int) ([]dto.ExamDto, error) {
	if err := s.ensureTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	exams, err := s.repo.Exam.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询教师成绩失败", zap.Int("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toExamDtos(exams), nil
}

func (s *gradeService) ListAllExams(ctx context.Context) ([]dto.ExamDto, error) {
	exams, err := s.repo.Exam.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, err
	}
	return toExamDtos(exams), nil
}

// ── 内部辅助 ──

func (s *gradeService) ensureTeacher(ctx context.Context, id int) error {
	exists, err := s.repo.Teacher.Exists(ctx, id)
	if err != nil {
		s.logger.Error("查询教师失败", zap.Int("teacher_id", id), zap.Error(err))
		return err
	}
	if !exists {
		return ErrTeacherNotFound
	}
	return nil
}

func (s *gradeService) ensureExam(ctx context.Context, id int) error {
	if _, err := s.repo.Exam.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		s.logger.Error("查询成绩失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}
