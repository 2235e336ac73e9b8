package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// SubjectRepository 课程数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]model.Subject, error)
	CountReferences(ctx context.Context, id int) (int64, error)
	Delete(ctx context.Context, id int) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Order("id ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) CountReferences(ctx context.Context, id int) (int64, error) {
	return countReferences(ctx, r.db, "subject_id", id)
}

func (r *subjectRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Subject{}, id).Error
}
