package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// activityRow 活动导出行
type activityRow struct {
	ID           uint   `excel:"编号"`
	Title        string `excel:"标题"`
	Type         string `excel:"类型"`
	Location     string `excel:"地点"`
	StartDate    string `excel:"开始时间"`
	EndDate      string `excel:"结束时间"`
	MaxCount     int    `excel:"人数上限"`
	Participants int64  `excel:"参与人数"`
}

// memberRow 成员导出行
type memberRow struct {
	ID         uint   `excel:"编号"`
	Username   string `excel:"用户名"`
	FullName   string `excel:"姓名"`
	Role       string `excel:"角色"`
	Department string `excel:"院系"`
	StudentID  string `excel:"学号"`
	Active     string `excel:"状态"`
}

// registrationRow 报名导出行
type registrationRow struct {
	ID       uint   `excel:"编号"`
	Username string `excel:"用户名"`
	Activity string `excel:"活动"`
	Status   string `excel:"状态"`
	Created  string `excel:"报名时间"`
}

// Download 导出报表为 xlsx
func Download(c *gin.Context) {
	reportType := c.DefaultQuery("type", "activities")

	f := excelize.NewFile()
	defer f.Close()

	var err error
	switch reportType {
	case "activities":
		err = exportActivities(f)
	case "members":
		err = exportMembers(f)
	case "registrations":
		err = exportRegistrations(f)
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("type 只支持 activities/members/registrations"))
		return
	}
	if err != nil {
		log.Error("导出报表失败", "error", err, "type", reportType)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("%s_report_%s.xlsx", reportType, time.Now().Format("20060102150405"))
	path := filepath.Join(os.TempDir(), filename)
	if err := f.SaveAs(path); err != nil {
		log.Error("保存报表文件失败", "error", err, "path", path)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	defer os.Remove(path)

	tools.SendStoredFile(c, path, filename, tools.ExcelContentType)
}

func exportActivities(f *excelize.File) error {
	var activities []model.Activity
	if err := database.DB.Order("start_date DESC").Find(&activities).Error; err != nil {
		return err
	}

	rows := make([]activityRow, 0, len(activities))
	for _, a := range activities {
		var participants int64
		if err := database.DB.Model(&model.Registration{}).
			Where("activity_id = ? AND status IN ?", a.ID,
				[]model.RegistrationStatus{model.RegistrationApproved, model.RegistrationAttended}).
			Count(&participants).Error; err != nil {
			return err
		}
		rows = append(rows, activityRow{
			ID:           a.ID,
			Title:        a.Title,
			Type:         string(a.Type),
			Location:     a.Location,
			StartDate:    a.StartDate.Format("2006-01-02 15:04"),
			EndDate:      a.EndDate.Format("2006-01-02 15:04"),
			MaxCount:     a.MaxParticipants,
			Participants: participants,
		})
	}
	return tools.ExportToExcel(f, "Sheet1", rows)
}

func exportMembers(f *excelize.File) error {
	var users []model.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		return err
	}

	rows := make([]memberRow, 0, len(users))
	for _, u := range users {
		active := "停用"
		if u.IsActive {
			active = "启用"
		}
		rows = append(rows, memberRow{
			ID:         u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			Role:       string(u.Role),
			Department: u.Department,
			StudentID:  u.StudentID,
			Active:     active,
		})
	}
	return tools.ExportToExcel(f, "Sheet1", rows)
}

func exportRegistrations(f *excelize.File) error {
	var registrations []model.Registration
	if err := database.DB.Preload("User").Preload("Activity").
		Order("created_at DESC").Find(&registrations).Error; err != nil {
		return err
	}

	rows := make([]registrationRow, 0, len(registrations))
	for _, r := range registrations {
		rows = append(rows, registrationRow{
			ID:       r.ID,
			Username: r.User.Username,
			Activity: r.Activity.Title,
			Status:   string(r.Status),
			Created:  r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return tools.ExportToExcel(f, "Sheet1", rows)
}
