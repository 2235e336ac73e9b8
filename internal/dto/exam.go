package dto

// ── 成绩模块 DTO ──

// ExamDto 成绩（含课程、学生、教师）
type ExamDto struct {
	ID        int        `json:"id"`
	ExamScore int        `json:"examScore"`
	Subject   SubjectDto `json:"subject"`
	Student   StudentDto `json:"student"`
	Teacher   TeacherDto `json:"teacher"`
}

// CreateExamDto 录入成绩请求
type CreateExamDto struct {
	StudentID int  `json:"studentId"`
	TeacherID int  `json:"teacherId"`
	SubjectID int  `json:"subjectId"`
	ExamScore *int `json:"examScore" binding:"required"`
}

// UpdateExamDto 修改成绩请求
// ExamScore 为指针：0 分合法，缺省则参数校验失败
type UpdateExamDto struct {
	ExamScore *int `json:"examScore" binding:"required"`
}
