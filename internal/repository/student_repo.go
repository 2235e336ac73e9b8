package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	// GetByID 查询学生（预加载班组）
	GetByID(ctx context.Context, id int) (*model.Student, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.Student, error)
	// Delete 在事务中删除学生及其关联账号，成绩由外键级联删除
	Delete(ctx context.Context, id int) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Group").
		First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("Group").
		Order("id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// profile_id 无外键，关联账号需显式删除
		if err := tx.Where("role = ? AND profile_id = ?", model.RoleStudent, id).
			Delete(&model.User{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Student{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
