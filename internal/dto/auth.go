package dto

// ── 认证模块 DTO ──

// LoginRequest 登录 / 注册请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

// UserInfo 账号信息（脱敏）
// 三个关联 ID 至多一个非 null，由账号角色决定
type UserInfo struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	StudentID       *int   `json:"studentId"`
	TeacherID       *int   `json:"teacherId"`
	DecanatWorkerID *int   `json:"decanatWorkerId"`
}

// LoginResult 登录结果：UserInfo 作为响应体，AccessToken 通过响应头下发
type LoginResult struct {
	User        UserInfo
	AccessToken string
	ExpiresIn   int
}

// LinkProfileRequest 关联账号与学生/教师/教务人员
type LinkProfileRequest struct {
	Role      string `json:"role"      binding:"required,oneof=Student Teacher DecanatWorker"`
	ProfileID int    `json:"profileId" binding:"required,min=1"`
}
