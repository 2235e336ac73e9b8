package handler

import "decanat/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Decanat *DecanatHandler
	Student *StudentHandler
	Teacher *TeacherHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Decanat: NewDecanatHandler(svc.Schedule, svc.Catalog, svc.User, svc.Export),
		Student: NewStudentHandler(svc.Student, svc.Export),
		Teacher: NewTeacherHandler(svc.Grade, svc.Catalog, svc.Export),
	}
}
