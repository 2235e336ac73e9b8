package model

// Student 学生表，对应 students
type Student struct {
	ID      int    `gorm:"primaryKey"                 json:"id"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	GroupID int    `gorm:"not null;index"             json:"group_id"`
	BaseModel

	// 关联
	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT" json:"group,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
