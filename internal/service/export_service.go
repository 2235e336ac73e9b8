package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"decanat/config"
	"decanat/internal/model"
	"decanat/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const (
	ContentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCalendar = "text/calendar; charset=utf-8"
)

// ExportService 导出业务接口
//
//   - 课表导出为 Excel (.xlsx)，一行一节课
//   - 学生/教师课表导出为 iCalendar，节次按配置的作息时间换算为起止时刻
type ExportService interface {
	ExportSchedules(ctx context.Context) (*bytes.Buffer, string, error)
	StudentCalendar(ctx context.Context, studentID int) ([]byte, string, error)
	TeacherCalendar(ctx context.Context, teacherID int) ([]byte, string, error)
}

type pairTime struct {
	start time.Duration
	end   time.Duration
}

type exportService struct {
	repo      *repository.Repository
	logger    *zap.Logger
	location  *time.Location
	pairTimes []pairTime
	now       func() time.Time
}

// NewExportService 创建 ExportService 实例
// 作息配置在 config.Validate 中已校验，这里解析失败时回退到默认值
func NewExportService(repo *repository.Repository, cfg *config.CalendarConfig, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("日历时区无效，使用 UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	times, err := parsePairTimes(cfg.PairTimes)
	if err != nil {
		logger.Warn("作息时间配置无效，使用默认值", zap.Error(err))
		times, _ = parsePairTimes(config.DefaultPairTimes)
	}

	return &exportService{
		repo:      repo,
		logger:    logger,
		location:  loc,
		pairTimes: times,
		now:       time.Now,
	}
}

func parsePairTimes(raw []string) ([]pairTime, error) {
	if len(raw) != model.MaxPairNumber {
		return nil, fmt.Errorf("需要 %d 项作息时间，实际 %d", model.MaxPairNumber, len(raw))
	}
	out := make([]pairTime, 0, len(raw))
	for _, s := range raw {
		start, end, err := config.ParsePairTime(s)
		if err != nil {
			return nil, err
		}
		out = append(out, pairTime{start: start, end: end})
	}
	return out, nil
}

// ═══════════════════════════════════════════════════════════
// ExportSchedules 全部课表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 表头：| 日期 | 节次 | 时间 | 班组 | 课程 | 教师 | 教室 |

func (s *exportService) ExportSchedules(ctx context.Context) (*bytes.Buffer, string, error) {
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{})
	if err != nil {
		s.logger.Error("查询课表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{12, 6, 14, 16, 28, 24, 10}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"日期", "节次", "时间", "班组", "课程", "教师", "教室"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for i := range schedules {
		sc := &schedules[i]
		view := toScheduleDto(sc)
		values := []interface{}{
			sc.Date.String(),
			sc.PairNumber,
			s.pairLabel(sc.PairNumber),
			view.Group.Name,
			view.Subject.Name,
			view.Teacher.Name,
			sc.Classroom,
		}
		for col, v := range values {
			f.SetCellValue(sheetName, cell(colName(col), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedules_%s.xlsx", s.now().In(s.location).Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// iCalendar 导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) StudentCalendar(ctx context.Context, studentID int) ([]byte, string, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int("student_id", studentID), zap.Error(err))
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{GroupID: student.GroupID})
	if err != nil {
		s.logger.Error("查询学生课表失败", zap.Int("student_id", studentID), zap.Error(err))
		return nil, "", err
	}

	name := student.Name
	if student.Group != nil {
		name = student.Group.Name
	}
	return s.buildCalendar(name, schedules), fmt.Sprintf("student_%d.ics", studentID), nil
}

func (s *exportService) TeacherCalendar(ctx context.Context, teacherID int) ([]byte, string, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Int("teacher_id", teacherID), zap.Error(err))
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{TeacherID: teacherID})
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Int("teacher_id", teacherID), zap.Error(err))
		return nil, "", err
	}

	return s.buildCalendar(teacher.Name, schedules), fmt.Sprintf("teacher_%d.ics", teacherID), nil
}

// buildCalendar 每条课表生成一个 VEVENT，UID 由课表 ID 决定，重复导入可覆盖旧事件
func (s *exportService) buildCalendar(name string, schedules []model.Schedule) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//decanat//schedule//RU")
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(s.location.String())

	stamp := s.now().UTC()
	for i := range schedules {
		sc := &schedules[i]
		start, end := s.pairInterval(sc.Date, sc.PairNumber)
		view := toScheduleDto(sc)

		event := cal.AddEvent(fmt.Sprintf("schedule-%d@decanat", sc.ID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(view.Subject.Name)
		if sc.Classroom != "" {
			event.SetLocation(sc.Classroom)
		}
		event.SetDescription(fmt.Sprintf("%s · %s · 第%d节", view.Group.Name, view.Teacher.Name, sc.PairNumber))
	}

	return []byte(cal.Serialize())
}

// pairInterval 将日期与节次换算为配置时区下的起止时刻
func (s *exportService) pairInterval(d model.Date, pair int) (time.Time, time.Time) {
	t := d.Time()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
	if pair < model.MinPairNumber || pair > len(s.pairTimes) {
		return day, day
	}
	pt := s.pairTimes[pair-1]
	return day.Add(pt.start), day.Add(pt.end)
}

func (s *exportService) pairLabel(pair int) string {
	if pair < model.MinPairNumber || pair > len(s.pairTimes) {
		return ""
	}
	pt := s.pairTimes[pair-1]
	return fmt.Sprintf("%s-%s", clock(pt.start), clock(pt.end))
}

// ── 辅助函数 ──

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
