package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Group         GroupRepository
	Student       StudentRepository
	Teacher       TeacherRepository
	DecanatWorker DecanatWorkerRepository
	Subject       SubjectRepository
	Schedule      ScheduleRepository
	Exam          ExamRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Group:         NewGroupRepo(db),
		Student:       NewStudentRepo(db),
		Teacher:       NewTeacherRepo(db),
		DecanatWorker: NewDecanatWorkerRepo(db),
		Subject:       NewSubjectRepo(db),
		Schedule:      NewScheduleRepo(db),
		Exam:          NewExamRepo(db),
	}
}
