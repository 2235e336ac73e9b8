package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id int) (*model.Teacher, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.Teacher, error)
	// CountReferences 统计引用该教师的课表与成绩条数
	CountReferences(ctx context.Context, id int) (int64, error)
	Delete(ctx context.Context, id int) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Teacher{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).Order("id ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) CountReferences(ctx context.Context, id int) (int64, error) {
	return countReferences(ctx, r.db, "teacher_id", id)
}

func (r *teacherRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ? AND profile_id = ?", model.RoleTeacher, id).
			Delete(&model.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Teacher{}, id).Error
	})
}

// countReferences 统计 schedules 与 exams 中某外键列引用指定 ID 的行数
func countReferences(ctx context.Context, db *gorm.DB, column string, id int) (int64, error) {
	var schedules, exams int64
	if err := db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where(column+" = ?", id).
		Count(&schedules).Error; err != nil {
		return 0, err
	}
	if err := db.WithContext(ctx).
		Model(&model.Exam{}).
		Where(column+" = ?", id).
		Count(&exams).Error; err != nil {
		return 0, err
	}
	return schedules + exams, nil
}

// DecanatWorkerRepository 教务人员数据访问接口
type DecanatWorkerRepository interface {
	Create(ctx context.Context, worker *model.DecanatWorker) error
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.DecanatWorker, error)
	// Delete 在事务中删除教务人员及其关联账号
	Delete(ctx context.Context, id int) error
}

type decanatWorkerRepo struct {
	db *gorm.DB
}

// NewDecanatWorkerRepo 创建 DecanatWorkerRepository 实例
func NewDecanatWorkerRepo(db *gorm.DB) DecanatWorkerRepository {
	return &decanatWorkerRepo{db: db}
}

func (r *decanatWorkerRepo) Create(ctx context.Context, worker *model.DecanatWorker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *decanatWorkerRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DecanatWorker{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *decanatWorkerRepo) List(ctx context.Context) ([]model.DecanatWorker, error) {
	var workers []model.DecanatWorker
	err := r.db.WithContext(ctx).Order("id ASC").Find(&workers).Error
	return workers, err
}

func (r *decanatWorkerRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ? AND profile_id = ?", model.RoleDecanatWorker, id).
			Delete(&model.User{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.DecanatWorker{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
