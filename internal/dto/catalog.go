package dto

// ── 基础目录 DTO ──

// GroupDto 班组
type GroupDto struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TeacherDto 教师
type TeacherDto struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubjectDto 课程
type SubjectDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StudentDto 学生（含班组）
type StudentDto struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Group *GroupDto `json:"group"`
}

// DecanatWorkerDto 教务人员
type DecanatWorkerDto struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateGroupRequest 创建班组
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateStudentRequest 创建学生
type CreateStudentRequest struct {
	Name    string `json:"name"    binding:"required,max=200"`
	GroupID int    `json:"groupId" binding:"required,min=1"`
}

// CreateTeacherRequest 创建教师 / 教务人员
type CreateTeacherRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// CreateSubjectRequest 创建课程
type CreateSubjectRequest struct {
	Name        string `json:"name"        binding:"required,max=200"`
	Description string `json:"description"`
}
