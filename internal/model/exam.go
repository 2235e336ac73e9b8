package model

import "time"

// MinExamScore / MaxExamScore 成绩范围
const (
	MinExamScore = 0
	MaxExamScore = 100
)

// ExamType 考核类型（仅存储，不对外暴露）
type ExamType string

const (
	ExamTypeExam       ExamType = "exam"
	ExamTypeTest       ExamType = "test"
	ExamTypeCoursework ExamType = "coursework"
)

// Exam 成绩表，对应 exams
type Exam struct {
	ID        int       `gorm:"primaryKey"                                json:"id"`
	StudentID int       `gorm:"not null;index"                            json:"student_id"`
	TeacherID int       `gorm:"not null;index"                            json:"teacher_id"`
	SubjectID int       `gorm:"not null"                                  json:"subject_id"`
	ExamScore int       `gorm:"type:smallint;not null"                    json:"exam_score"`
	ExamType  ExamType  `gorm:"type:varchar(20);not null;default:'exam'"  json:"-"`
	ExamDate  *Date     `gorm:"type:date"                                 json:"-"`
	GradedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"-"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"  json:"student,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;constraint:OnDelete:RESTRICT" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:RESTRICT" json:"subject,omitempty"`
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }
