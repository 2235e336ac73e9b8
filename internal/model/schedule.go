package model

import "decanat/config"

// MinPairNumber / MaxPairNumber 每天课节编号范围，上限与作息时间表项数一致
const (
	MinPairNumber = 1
	MaxPairNumber = config.MaxPairNumber
)

// Schedule 课表表，对应 schedules
// (group_id, date, pair_number) 唯一
type Schedule struct {
	ID         int    `gorm:"primaryKey"                                   json:"id"`
	GroupID    int    `gorm:"not null;uniqueIndex:uq_schedules_slot"       json:"group_id"`
	TeacherID  int    `gorm:"not null;index"                               json:"teacher_id"`
	SubjectID  int    `gorm:"not null"                                     json:"subject_id"`
	Date       Date   `gorm:"type:date;not null;uniqueIndex:uq_schedules_slot" json:"date"`
	PairNumber int    `gorm:"type:smallint;not null;uniqueIndex:uq_schedules_slot" json:"pair_number"`
	Classroom  string `gorm:"type:varchar(50);not null;default:''"         json:"classroom"`
	BaseModel

	// 关联
	Group   *Group   `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"    json:"group,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;constraint:OnDelete:RESTRICT" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:RESTRICT" json:"subject,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }
