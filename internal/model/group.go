package model

// Group 班组表，对应 groups
type Group struct {
	ID   int    `gorm:"primaryKey"                          json:"id"`
	Name string `gorm:"type:varchar(100);not null;unique"   json:"name"`
	BaseModel
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }
