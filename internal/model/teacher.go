package model

// Teacher 教师表，对应 teachers
type Teacher struct {
	ID   int    `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(200);not null" json:"name"`
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// DecanatWorker 教务人员表，对应 decanat_workers
type DecanatWorker struct {
	ID   int    `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(200);not null" json:"name"`
	BaseModel
}

// TableName 指定表名
func (DecanatWorker) TableName() string { return "decanat_workers" }
