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

// ── 课表模块业务错误 ──

var (
	ErrScheduleNotFound    = errors.New("课表条目不存在")
	ErrScheduleConflict    = errors.New("该班组在此日期与节次已有课程")
	ErrScheduleRefNotFound = errors.New("课表引用的班组、教师或课程不存在")
)

// ScheduleService 课表业务接口（教务端）
type ScheduleService interface {
	// List 全部课表，按日期、节次升序
	List(ctx context.Context) ([]dto.ScheduleDto, error)
	GetByID(ctx context.Context, id int) (*dto.ScheduleDto, error)
	Create(ctx context.Context, req *dto.CreateScheduleDto) (*dto.ScheduleDto, error)
	Update(ctx context.Context, id int, req *dto.CreateScheduleDto) error
	Delete(ctx context.Context, id int) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context) ([]dto.ScheduleDto, error) {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{})
	if err != nil {
		s.logger.Error("列出课表失败", zap.Error(err))
		return nil, err
	}
	return toScheduleDtos(schedules), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id int) (*dto.ScheduleDto, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	out := toScheduleDto(schedule)
	return &out, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleDto) (*dto.ScheduleDto, error) {
	// 1. 字段校验（先于任何查询）
	if err := validateScheduleFields(req); err != nil {
		return nil, err
	}

	// 2. 引用存在性 + 节次冲突
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, req, 0); err != nil {
		return nil, err
	}

	// 3. 写入
	schedule := &model.Schedule{
		GroupID:    req.GroupID,
		TeacherID:  req.TeacherID,
		SubjectID:  req.SubjectID,
		Date:       req.Date,
		PairNumber: req.PairNumber,
		Classroom:  req.Classroom,
	}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		return nil, s.translateWriteError("创建课表失败", err)
	}

	// 4. 回读关联
	return s.GetByID(ctx, schedule.ID)
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id int, req *dto.CreateScheduleDto) error {
	if err := validateScheduleFields(req); err != nil {
		return err
	}

	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return err
	}
	if err := s.checkSlot(ctx, req, id); err != nil {
		return err
	}

	schedule := &model.Schedule{
		ID:         id,
		GroupID:    req.GroupID,
		TeacherID:  req.TeacherID,
		SubjectID:  req.SubjectID,
		Date:       req.Date,
		PairNumber: req.PairNumber,
		Classroom:  req.Classroom,
	}
	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		return s.translateWriteError("更新课表失败", err)
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除课表失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func validateScheduleFields(req *dto.CreateScheduleDto) error {
	if err := ValidatePairNumber(req.PairNumber); err != nil {
		return err
	}
	return ValidateDate(req.Date)
}

// checkReferences 依次检查班组、教师、课程是否存在
func (s *scheduleService) checkReferences(ctx context.Context, req *dto.CreateScheduleDto) error {
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("查询班组失败", zap.Int("group_id", req.GroupID), zap.Error(err))
		return err
	}

	exists, err := s.repo.Teacher.Exists(ctx, req.TeacherID)
	if err != nil {
		s.logger.Error("查询教师失败", zap.Int("teacher_id", req.TeacherID), zap.Error(err))
		return err
	}
	if !exists {
		return ErrTeacherNotFound
	}

	exists, err = s.repo.Subject.Exists(ctx, req.SubjectID)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Int("subject_id", req.SubjectID), zap.Error(err))
		return err
	}
	if !exists {
		return ErrSubjectNotFound
	}
	return nil
}

// checkSlot 检查 (班组, 日期, 节次) 是否已被占用，excludeID 为正在更新的条目
func (s *scheduleService) checkSlot(ctx context.Context, req *dto.CreateScheduleDto, excludeID int) error {
	taken, err := s.repo.Schedule.SlotTaken(ctx, req.GroupID, req.Date, req.PairNumber, excludeID)
	if err != nil {
		s.logger.Error("检查课表冲突失败", zap.Error(err))
		return err
	}
	if taken {
		return ErrScheduleConflict
	}
	return nil
}

// translateWriteError 检查与写入之间的并发竞争由数据库约束兜底
func (s *scheduleService) translateWriteError(msg string, err error) error {
	switch {
	case pkgerrors.IsDuplicate(err):
		return ErrScheduleConflict
	case pkgerrors.IsForeignKey(err):
		return ErrScheduleRefNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
