package service

import (
	"errors"
	"fmt"

	"decanat/internal/model"
)

// ── 通用校验错误 ──

var (
	ErrInvalidPairNumber = fmt.Errorf("课节编号必须在 %d-%d 之间", model.MinPairNumber, model.MaxPairNumber)
	ErrInvalidExamScore  = fmt.Errorf("成绩必须在 %d-%d 之间", model.MinExamScore, model.MaxExamScore)
	ErrDateRequired      = errors.New("日期不能为空")
	ErrInvalidRole       = errors.New("未知的账号角色")
)

// ValidatePairNumber 校验课节编号
func ValidatePairNumber(n int) error {
	if n < model.MinPairNumber || n > model.MaxPairNumber {
		return ErrInvalidPairNumber
	}
	return nil
}

// ValidateExamScore 校验成绩范围（闭区间）
func ValidateExamScore(score int) error {
	if score < model.MinExamScore || score > model.MaxExamScore {
		return ErrInvalidExamScore
	}
	return nil
}

// ValidateDate 校验日期已填写
func ValidateDate(d model.Date) error {
	if d.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// ValidateProfile 校验账号关联：角色必须已知，关联 ID 必须为正
func ValidateProfile(p model.Profile) error {
	if !p.Role.Valid() {
		return ErrInvalidRole
	}
	if p.ID != nil && *p.ID <= 0 {
		return ErrProfileNotFound
	}
	return nil
}
