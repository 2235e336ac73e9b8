package service

import (
	"decanat/internal/dto"
	"decanat/internal/model"
)

// ── 实体 → DTO 组装 ──
// 关联为空时输出零值对象，前端按固定结构读取

func toGroupDto(g *model.Group) dto.GroupDto {
	if g == nil {
		return dto.GroupDto{}
	}
	return dto.GroupDto{ID: g.ID, Name: g.Name}
}

func toTeacherDto(t *model.Teacher) dto.TeacherDto {
	if t == nil {
		return dto.TeacherDto{}
	}
	return dto.TeacherDto{ID: t.ID, Name: t.Name}
}

func toSubjectDto(s *model.Subject) dto.SubjectDto {
	if s == nil {
		return dto.SubjectDto{}
	}
	return dto.SubjectDto{ID: s.ID, Name: s.Name, Description: s.Description}
}

func toDecanatWorkerDto(w *model.DecanatWorker) dto.DecanatWorkerDto {
	return dto.DecanatWorkerDto{ID: w.ID, Name: w.Name}
}

func toStudentDto(s *model.Student) dto.StudentDto {
	if s == nil {
		return dto.StudentDto{}
	}
	out := dto.StudentDto{ID: s.ID, Name: s.Name}
	if s.Group != nil {
		g := toGroupDto(s.Group)
		out.Group = &g
	}
	return out
}

func toScheduleDto(s *model.Schedule) dto.ScheduleDto {
	return dto.ScheduleDto{
		ID:         s.ID,
		Date:       s.Date,
		PairNumber: s.PairNumber,
		Classroom:  s.Classroom,
		Group:      toGroupDto(s.Group),
		Subject:    toSubjectDto(s.Subject),
		Teacher:    toTeacherDto(s.Teacher),
	}
}

func toScheduleDtos(schedules []model.Schedule) []dto.ScheduleDto {
	result := make([]dto.ScheduleDto, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleDto(&schedules[i]))
	}
	return result
}

func toExamDto(e *model.Exam) dto.ExamDto {
	return dto.ExamDto{
		ID:        e.ID,
		ExamScore: e.ExamScore,
		Subject:   toSubjectDto(e.Subject),
		Student:   toStudentDto(e.Student),
		Teacher:   toTeacherDto(e.Teacher),
	}
}

func toExamDtos(exams []model.Exam) []dto.ExamDto {
	result := make([]dto.ExamDto, 0, len(exams))
	for i := range exams {
		result = append(result, toExamDto(&exams[i]))
	}
	return result
}

func toUserInfo(u *model.User) dto.UserInfo {
	p := u.Profile()
	return dto.UserInfo{
		ID:              u.ID,
		Username:        u.Username,
		Role:            string(u.Role),
		StudentID:       p.StudentID(),
		TeacherID:       p.TeacherID(),
		DecanatWorkerID: p.DecanatWorkerID(),
	}
}
