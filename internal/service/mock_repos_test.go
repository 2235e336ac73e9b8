package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"decanat/internal/model"
	"decanat/internal/repository"
)

// ── 内存数据集 ──
// 各 Mock Repository 共享同一份数据，以便模拟 Preload 关联

type mockStore struct {
	nextID    int
	users     map[int]*model.User
	groups    map[int]*model.Group
	students  map[int]*model.Student
	teachers  map[int]*model.Teacher
	workers   map[int]*model.DecanatWorker
	subjects  map[int]*model.Subject
	schedules map[int]*model.Schedule
	exams     map[int]*model.Exam
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     make(map[int]*model.User),
		groups:    make(map[int]*model.Group),
		students:  make(map[int]*model.Student),
		teachers:  make(map[int]*model.Teacher),
		workers:   make(map[int]*model.DecanatWorker),
		subjects:  make(map[int]*model.Subject),
		schedules: make(map[int]*model.Schedule),
		exams:     make(map[int]*model.Exam),
	}
}

func (s *mockStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *mockStore) addGroup(name string) *model.Group {
	g := &model.Group{ID: s.id(), Name: name}
	s.groups[g.ID] = g
	return g
}

func (s *mockStore) addStudent(name string, groupID int) *model.Student {
	st := &model.Student{ID: s.id(), Name: name, GroupID: groupID}
	s.students[st.ID] = st
	return st
}

func (s *mockStore) addTeacher(name string) *model.Teacher {
	t := &model.Teacher{ID: s.id(), Name: name}
	s.teachers[t.ID] = t
	return t
}

func (s *mockStore) addDecanatWorker(name string) *model.DecanatWorker {
	w := &model.DecanatWorker{ID: s.id(), Name: name}
	s.workers[w.ID] = w
	return w
}

func (s *mockStore) addSubject(name string) *model.Subject {
	sub := &model.Subject{ID: s.id(), Name: name, Description: name + " 简介"}
	s.subjects[sub.ID] = sub
	return sub
}

func (s *mockStore) addSchedule(groupID, teacherID, subjectID int, date model.Date, pair int) *model.Schedule {
	sc := &model.Schedule{
		ID: s.id(), GroupID: groupID, TeacherID: teacherID, SubjectID: subjectID,
		Date: date, PairNumber: pair, Classroom: "101",
	}
	s.schedules[sc.ID] = sc
	return sc
}

func (s *mockStore) addExam(studentID, teacherID, subjectID, score int) *model.Exam {
	e := &model.Exam{ID: s.id(), StudentID: studentID, TeacherID: teacherID, SubjectID: subjectID, ExamScore: score}
	s.exams[e.ID] = e
	return e
}

// newMockRepository 组装使用同一数据集的 Repository
func newMockRepository(store *mockStore) *repository.Repository {
	return &repository.Repository{
		User:          &mockUserRepo{s: store},
		Group:         &mockGroupRepo{s: store},
		Student:       &mockStudentRepo{s: store},
		Teacher:       &mockTeacherRepo{s: store},
		DecanatWorker: &mockDecanatWorkerRepo{s: store},
		Subject:       &mockSubjectRepo{s: store},
		Schedule:      &mockScheduleRepo{s: store},
		Exam:          &mockExamRepo{s: store},
	}
}

func testLogger() *zap.Logger { return zap.NewNop() }

func sortedKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	s         *mockStore
	createErr error
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = m.s.id()
	cp := *user
	m.s.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepo) GetByProfile(_ context.Context, role model.Role, profileID int) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Role == role && u.ProfileID != nil && *u.ProfileID == profileID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, id := range sortedKeys(m.s.users) {
		result = append(result, *m.s.users[id])
	}
	return result, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int, profile model.Profile) error {
	if u, ok := m.s.users[id]; ok {
		u.SetProfile(profile)
	}
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	s *mockStore
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	for _, g := range m.s.groups {
		if g.Name == group.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	group.ID = m.s.id()
	cp := *group
	m.s.groups[group.ID] = &cp
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id int) (*model.Group, error) {
	if g, ok := m.s.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context) ([]model.Group, error) {
	var result []model.Group
	for _, id := range sortedKeys(m.s.groups) {
		result = append(result, *m.s.groups[id])
	}
	return result, nil
}

func (m *mockGroupRepo) CountStudents(_ context.Context, id int) (int64, error) {
	var n int64
	for _, st := range m.s.students {
		if st.GroupID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id int) error {
	delete(m.s.groups, id)
	for sid, sc := range m.s.schedules {
		if sc.GroupID == id {
			delete(m.s.schedules, sid)
		}
	}
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	s *mockStore
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	student.ID = m.s.id()
	cp := *student
	cp.Group = nil
	m.s.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) withGroup(st *model.Student) model.Student {
	cp := *st
	if g, ok := m.s.groups[st.GroupID]; ok {
		gc := *g
		cp.Group = &gc
	}
	return cp
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	if st, ok := m.s.students[id]; ok {
		cp := m.withGroup(st)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.s.students[id]
	return ok, nil
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, id := range sortedKeys(m.s.students) {
		result = append(result, m.withGroup(m.s.students[id]))
	}
	return result, nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.s.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.students, id)
	for eid, e := range m.s.exams {
		if e.StudentID == id {
			delete(m.s.exams, eid)
		}
	}
	for uid, u := range m.s.users {
		if u.Profile().StudentID() != nil && *u.ProfileID == id {
			delete(m.s.users, uid)
		}
	}
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	s *mockStore
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	teacher.ID = m.s.id()
	cp := *teacher
	m.s.teachers[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int) (*model.Teacher, error) {
	if t, ok := m.s.teachers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.s.teachers[id]
	return ok, nil
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, id := range sortedKeys(m.s.teachers) {
		result = append(result, *m.s.teachers[id])
	}
	return result, nil
}

func (m *mockTeacherRepo) CountReferences(_ context.Context, id int) (int64, error) {
	var n int64
	for _, sc := range m.s.schedules {
		if sc.TeacherID == id {
			n++
		}
	}
	for _, e := range m.s.exams {
		if e.TeacherID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id int) error {
	delete(m.s.teachers, id)
	return nil
}

// ── Mock DecanatWorkerRepository ──

type mockDecanatWorkerRepo struct {
	s *mockStore
}

func (m *mockDecanatWorkerRepo) Create(_ context.Context, worker *model.DecanatWorker) error {
	worker.ID = m.s.id()
	cp := *worker
	m.s.workers[worker.ID] = &cp
	return nil
}

func (m *mockDecanatWorkerRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.s.workers[id]
	return ok, nil
}

func (m *mockDecanatWorkerRepo) List(_ context.Context) ([]model.DecanatWorker, error) {
	var result []model.DecanatWorker
	for _, id := range sortedKeys(m.s.workers) {
		result = append(result, *m.s.workers[id])
	}
	return result, nil
}

func (m *mockDecanatWorkerRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.s.workers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.s.workers, id)
	for uid, u := range m.s.users {
		if u.Profile().DecanatWorkerID() != nil && *u.ProfileID == id {
			delete(m.s.users, uid)
		}
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	s *mockStore
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	subject.ID = m.s.id()
	cp := *subject
	m.s.subjects[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int) (*model.Subject, error) {
	if sub, ok := m.s.subjects[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.s.subjects[id]
	return ok, nil
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range sortedKeys(m.s.subjects) {
		result = append(result, *m.s.subjects[id])
	}
	return result, nil
}

func (m *mockSubjectRepo) CountReferences(_ context.Context, id int) (int64, error) {
	var n int64
	for _, sc := range m.s.schedules {
		if sc.SubjectID == id {
			n++
		}
	}
	for _, e := range m.s.exams {
		if e.SubjectID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id int) error {
	delete(m.s.subjects, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	s *mockStore
	// createErr 模拟检查与写入之间发生的并发冲突
	createErr error
}

func (m *mockScheduleRepo) withJoins(sc *model.Schedule) model.Schedule {
	cp := *sc
	if g, ok := m.s.groups[sc.GroupID]; ok {
		gc := *g
		cp.Group = &gc
	}
	if t, ok := m.s.teachers[sc.TeacherID]; ok {
		tc := *t
		cp.Teacher = &tc
	}
	if sub, ok := m.s.subjects[sc.SubjectID]; ok {
		subc := *sub
		cp.Subject = &subc
	}
	return cp
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if m.createErr != nil {
		return m.createErr
	}
	schedule.ID = m.s.id()
	cp := *schedule
	m.s.schedules[schedule.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id int) (*model.Schedule, error) {
	if sc, ok := m.s.schedules[id]; ok {
		cp := m.withJoins(sc)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, sc := range m.s.schedules {
		if filter.GroupID > 0 && sc.GroupID != filter.GroupID {
			continue
		}
		if filter.TeacherID > 0 && sc.TeacherID != filter.TeacherID {
			continue
		}
		result = append(result, m.withJoins(sc))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.PairNumber != b.PairNumber {
			return a.PairNumber < b.PairNumber
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	cp := *schedule
	m.s.schedules[schedule.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id int) error {
	delete(m.s.schedules, id)
	return nil
}

func (m *mockScheduleRepo) SlotTaken(_ context.Context, groupID int, date model.Date, pairNumber int, excludeID int) (bool, error) {
	for _, sc := range m.s.schedules {
		if sc.ID == excludeID {
			continue
		}
		if sc.GroupID == groupID && sc.Date.Equal(date) && sc.PairNumber == pairNumber {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	s *mockStore
}

func (m *mockExamRepo) withJoins(e *model.Exam) model.Exam {
	cp := *e
	if st, ok := m.s.students[e.StudentID]; ok {
		stc := (&mockStudentRepo{s: m.s}).withGroup(st)
		cp.Student = &stc
	}
	if t, ok := m.s.teachers[e.TeacherID]; ok {
		tc := *t
		cp.Teacher = &tc
	}
	if sub, ok := m.s.subjects[e.SubjectID]; ok {
		subc := *sub
		cp.Subject = &subc
	}
	return cp
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	exam.ID = m.s.id()
	cp := *exam
	m.s.exams[exam.ID] = &cp
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id int) (*model.Exam, error) {
	if e, ok := m.s.exams[id]; ok {
		cp := m.withJoins(e)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) list(keep func(*model.Exam) bool) []model.Exam {
	keys := sortedKeys(m.s.exams)
	var result []model.Exam
	for i := len(keys) - 1; i >= 0; i-- {
		e := m.s.exams[keys[i]]
		if keep(e) {
			result = append(result, m.withJoins(e))
		}
	}
	return result
}

func (m *mockExamRepo) ListByStudent(_ context.Context, studentID int) ([]model.Exam, error) {
	return m.list(func(e *model.Exam) bool { return e.StudentID == studentID }), nil
}

func (m *mockExamRepo) ListByTeacher(_ context.Context, teacherID int) ([]model.Exam, error) {
	return m.list(func(e *model.Exam) bool { return e.TeacherID == teacherID }), nil
}

func (m *mockExamRepo) ListAll(_ context.Context) ([]model.Exam, error) {
	return m.list(func(*model.Exam) bool { return true }), nil
}

func (m *mockExamRepo) UpdateScore(_ context.Context, id int, score int) error {
	if e, ok := m.s.exams[id]; ok {
		e.ExamScore = score
	}
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id int) error {
	delete(m.s.exams, id)
	return nil
}
