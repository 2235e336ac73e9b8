package model

// Role 账号角色
type Role string

const (
	RoleStudent       Role = "Student"
	RoleTeacher       Role = "Teacher"
	RoleDecanatWorker Role = "DecanatWorker"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleDecanatWorker:
		return true
	}
	return false
}

// Profile 账号关联的实体：Role 决定 ID 指向 students / teachers / decanat_workers 中的哪一张表。
// 一个账号至多关联一个实体，ID 为 nil 表示尚未关联。
type Profile struct {
	Role Role
	ID   *int
}

// Linked 是否已关联实体
func (p Profile) Linked() bool { return p.ID != nil }

// StudentID 仅当账号关联的是学生时返回 ID
func (p Profile) StudentID() *int { return p.idFor(RoleStudent) }

// TeacherID 仅当账号关联的是教师时返回 ID
func (p Profile) TeacherID() *int { return p.idFor(RoleTeacher) }

// DecanatWorkerID 仅当账号关联的是教务人员时返回 ID
func (p Profile) DecanatWorkerID() *int { return p.idFor(RoleDecanatWorker) }

func (p Profile) idFor(r Role) *int {
	if p.Role != r || p.ID == nil {
		return nil
	}
	id := *p.ID
	return &id
}

// User 账号表，对应 users
type User struct {
	ID           int    `gorm:"primaryKey"                                    json:"id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"        json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                    json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'Student'"   json:"role"`
	ProfileID    *int   `gorm:"column:profile_id"                             json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Profile 返回账号的关联实体
func (u *User) Profile() Profile {
	return Profile{Role: u.Role, ID: u.ProfileID}
}

// SetProfile 以判别联合整体替换角色与关联
func (u *User) SetProfile(p Profile) {
	u.Role = p.Role
	u.ProfileID = p.ID
}
