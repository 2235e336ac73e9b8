package model

// Subject 课程表，对应 subjects
type Subject struct {
	ID          int    `gorm:"primaryKey"                 json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
