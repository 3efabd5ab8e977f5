package report

import (
	"testing"
	"time"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedActivity(t *testing.T, db *gorm.DB, owner uint, start time.Time) {
	a := model.Activity{
		Title:     "活动",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
		OwnerID:   owner,
		Type:      model.ActivityTypeStudy,
	}
	require.NoError(t, db.Create(&a).Error)
}

func TestMonthlyCountsZeroFilled(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleReport{}).Init()

	user := model.User{Username: "owner", Email: "owner@example.com", Password: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	year := time.Now().Year()
	// 三月两场，十一月一场，其余月份为零
	seedActivity(t, db, user.ID, time.Date(year, 3, 5, 10, 0, 0, 0, time.Local))
	seedActivity(t, db, user.ID, time.Date(year, 3, 20, 10, 0, 0, 0, time.Local))
	seedActivity(t, db, user.ID, time.Date(year, 11, 1, 10, 0, 0, 0, time.Local))
	// 去年的不计入
	seedActivity(t, db, user.ID, time.Date(year-1, 3, 5, 10, 0, 0, 0, time.Local))

	counts, err := MonthlyCounts(db, year, &model.Activity{}, "start_date", nil)
	require.NoError(t, err)

	require.Equal(t, int64(2), counts[2])
	require.Equal(t, int64(1), counts[10])
	for m, c := range counts {
		if m == 2 || m == 10 {
			continue
		}
		require.Equal(t, int64(0), c, "month %d", m+1)
	}
}

func TestMonthlyCountsExcludesCancelled(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleReport{}).Init()

	user := model.User{Username: "owner", Email: "owner@example.com", Password: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	member := model.User{Username: "member", Email: "member@example.com", Password: "x", Role: model.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&member).Error)

	now := time.Now()
	a := model.Activity{Title: "活动", StartDate: now, EndDate: now.Add(time.Hour), OwnerID: user.ID, Type: model.ActivityTypeOther}
	require.NoError(t, db.Create(&a).Error)

	require.NoError(t, db.Create(&model.Registration{
		UserID: member.ID, ActivityID: a.ID, Status: model.RegistrationPending,
	}).Error)
	require.NoError(t, db.Create(&model.Registration{
		UserID: user.ID, ActivityID: a.ID, Status: model.RegistrationCancelled,
	}).Error)

	counts, err := MonthlyCounts(db, now.Year(), &model.Registration{}, "created_at",
		func(q *gorm.DB) *gorm.DB {
			return q.Where("status <> ?", model.RegistrationCancelled)
		})
	require.NoError(t, err)

	var total int64
	for _, c := range counts {
		total += c
	}
	require.Equal(t, int64(1), total)
}
