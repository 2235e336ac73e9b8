package dto

import "decanat/internal/model"

// ── 课表模块 DTO ──

// ScheduleDto 课表条目（含班组、课程、教师）
type ScheduleDto struct {
	ID         int        `json:"id"`
	Date       model.Date `json:"date"`
	PairNumber int        `json:"pairNumber"`
	Classroom  string     `json:"classroom"`
	Group      GroupDto   `json:"group"`
	Subject    SubjectDto `json:"subject"`
	Teacher    TeacherDto `json:"teacher"`
}

// CreateScheduleDto 创建 / 更新课表请求
// 数值范围在 Service 层校验，以便返回明确的业务错误
type CreateScheduleDto struct {
	GroupID    int        `json:"groupId"`
	TeacherID  int        `json:"teacherId"`
	SubjectID  int        `json:"subjectId"`
	Date       model.Date `json:"date"`
	PairNumber int        `json:"pairNumber"`
	Classroom  string     `json:"classroom" binding:"max=50"`
}
