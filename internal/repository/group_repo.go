package repository

import (
	"context"

	"gorm.io/gorm"

	"decanat/internal/model"
)

// GroupRepository 班组数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	// CountStudents 统计引用该班组的学生数（删除前的 RESTRICT 检查）
	CountStudents(ctx context.Context, id int) (int64, error)
	// Delete 物理删除，课表随之级联删除
	Delete(ctx context.Context, id int) error
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo 创建 GroupRepository 实例
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id int) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).Order("id ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) CountStudents(ctx context.Context, id int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("group_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *groupRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}
