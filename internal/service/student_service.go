package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"decanat/internal/dto"
	"decanat/internal/model"
	"decanat/internal/repository"
)

var (
	ErrStudentNotFound = errors.New("学生不存在")
)

// StudentService 学生端查询接口
type StudentService interface {
	GetStudent(ctx context.Context, studentID int) (*dto.StudentDto, error)
	// GetSchedule 学生所在班组的课表
	GetSchedule(ctx context.Context, studentID int) ([]dto.ScheduleDto, error)
	// GetGrades 学生的全部成绩，最新录入在前
	GetGrades(ctx context.Context, studentID int) ([]dto.ExamDto, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) GetStudent(ctx context.Context, studentID int) (*dto.StudentDto, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := toStudentDto(student)
	return &out, nil
}

func (s *studentService) GetSchedule(ctx context.Context, studentID int) ([]dto.ScheduleDto, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{GroupID: student.GroupID})
	if err != nil {
		s.logger.Error("查询学生课表失败", zap.Int("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toScheduleDtos(schedules), nil
}

func (s *studentService) GetGrades(ctx context.Context, studentID int) ([]dto.ExamDto, error) {
	if _, err := s.getStudent(ctx, studentID); err != nil {
		return nil, err
	}

	exams, err := s.repo.Exam.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生成绩失败", zap.Int("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toExamDtos(exams), nil
}

func (s *studentService) getStudent(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int("student_id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}
