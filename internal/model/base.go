package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ── 日期类型（PostgreSQL DATE，无时间部分） ──

// DateLayout API 与数据库统一使用的日期格式
const DateLayout = "2006-01-02"

// Date 对应 PostgreSQL DATE 类型，JSON 序列化为 "YYYY-MM-DD"。
type Date time.Time

// NewDate 构造日期，仅保留年月日（UTC）
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate 解析 "YYYY-MM-DD"；兼容带时间部分的 ISO 字符串，只取日期
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("日期格式无效 %q，应为 YYYY-MM-DD", s)
	}
	return Date(t), nil
}

// Time 返回 UTC 零点的 time.Time
func (d Date) Time() time.Time { return time.Time(d) }

// IsZero 是否未设置
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Equal 按日历日比较
func (d Date) Equal(o Date) bool { return d.String() == o.String() }

// Before 按日历日比较
func (d Date) Before(o Date) bool { return d.String() < o.String() }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

// GormDataType 告知 GORM 列类型
func (Date) GormDataType() string { return "date" }

// Scan 读取 PostgreSQL 返回的 DATE（驱动可能给出 time.Time 或文本）。
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date(time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC))
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

// Value 写入为 "YYYY-MM-DD" 文本。
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// MarshalJSON 输出 "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON 解析 "YYYY-MM-DD"，null 或空串视为未设置
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("日期必须是字符串: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}
