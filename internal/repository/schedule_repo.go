package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// ScheduleFilter 课表查询条件，零值字段不参与过滤
type ScheduleFilter struct {
	GroupID   int
	TeacherID int
}

// ScheduleRepository 课表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	// GetByID 查询课表条目（预加载班组、教师、课程）
	GetByID(ctx context.Context, id int) (*model.Schedule, error)
	// List 按日期、节次升序返回
	List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id int) error
	// SlotTaken 检查班组在指定日期节次是否已有课，excludeID 为 0 时不排除
	SlotTaken(ctx context.Context, groupID int, date model.Date, pairNumber int, excludeID int) (bool, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) withJoins(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Group").
		Preload("Teacher").
		Preload("Subject")
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Omit("Group", "Teacher", "Subject").Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id int) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.withJoins(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter) ([]model.Schedule, error) {
	query := r.withJoins(ctx)
	if filter.GroupID > 0 {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.TeacherID > 0 {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}

	var schedules []model.Schedule
	err := query.Order("date ASC, pair_number ASC, id ASC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("id = ?", schedule.ID).
		Updates(map[string]interface{}{
			"group_id":    schedule.GroupID,
			"teacher_id":  schedule.TeacherID,
			"subject_id":  schedule.SubjectID,
			"date":        schedule.Date,
			"pair_number": schedule.PairNumber,
			"classroom":   schedule.Classroom,
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Schedule{}, id).Error
}

func (r *scheduleRepo) SlotTaken(ctx context.Context, groupID int, date model.Date, pairNumber int, excludeID int) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("group_id = ? AND date = ? AND pair_number = ?", groupID, date, pairNumber)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
