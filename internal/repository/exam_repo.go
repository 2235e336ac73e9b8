package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// ExamRepository 成绩数据访问接口
// 列表均按 ID 倒序（最新录入在前）
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id int) (*model.Exam, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Exam, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.Exam, error)
	ListAll(ctx context.Context) ([]model.Exam, error)
	UpdateScore(ctx context.Context, id int, score int) error
	Delete(ctx context.Context, id int) error
}

type examRepo struct {
	db *gorm.DB
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) withJoins(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Student.Group").
		Preload("Teacher").
		Preload("Subject")
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Omit("Student", "Teacher", "Subject").Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	var exam model.Exam
	if err := r.withJoins(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) ListByStudent(ctx context.Context, studentID int) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.withJoins(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepo) ListByTeacher(ctx context.Context, teacherID int) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.withJoins(ctx).
		Where("teacher_id = ?", teacherID).
		Order("id DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepo) ListAll(ctx context.Context) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.withJoins(ctx).Order("id DESC").Find(&exams).Error
	return exams, err
}

func (r *examRepo) UpdateScore(ctx context.Context, id int, score int) error {
	return r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"exam_score": score,
			"graded_at":  gorm.Expr("NOW()"),
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *examRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Exam{}, id).Error
}
