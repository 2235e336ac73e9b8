package errors

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate 唯一约束冲突（需要 gorm.Config.TranslateError）
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKey 外键约束冲突：引用不存在，或被引用的记录仍有依赖（RESTRICT）
func IsForeignKey(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
