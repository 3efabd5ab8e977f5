package memberbook

import (
	"testing"
	"time"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB) model.User {
	user := model.User{Username: "member", Email: "member@example.com", Password: "x", Role: model.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func addMemberActivity(t *testing.T, db *gorm.DB, userID uint, points int) {
	admin := model.User{}
	db.Where("username = ?", "owner").First(&admin)
	if admin.ID == 0 {
		admin = model.User{Username: "owner", Email: "owner@example.com", Password: "x", Role: model.RoleAdmin, IsActive: true}
		require.NoError(t, db.Create(&admin).Error)
	}
	now := time.Now()
	a := model.Activity{Title: "活动", StartDate: now, EndDate: now.Add(time.Hour), OwnerID: admin.ID, Type: model.ActivityTypeOther}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&model.MemberActivity{
		UserID: userID, ActivityID: a.ID, Date: now, Points: points,
	}).Error)
}

func TestComputeStatisticsRank(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleMemberBook{}).Init()
	member := seedMember(t, db)

	// 无记录时为合格
	stats, err := computeStatistics(db, member.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalActivities)
	require.Equal(t, 0, stats.TotalPoints)
	require.Equal(t, "合格", stats.Rank)

	// 累计35分为良好
	addMemberActivity(t, db, member.ID, 20)
	addMemberActivity(t, db, member.ID, 15)
	stats, err = computeStatistics(db, member.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalActivities)
	require.Equal(t, 35, stats.TotalPoints)
	require.Equal(t, "良好", stats.Rank)

	// 超过50分为优秀
	addMemberActivity(t, db, member.ID, 20)
	stats, err = computeStatistics(db, member.ID)
	require.NoError(t, err)
	require.Equal(t, 55, stats.TotalPoints)
	require.Equal(t, "优秀", stats.Rank)
}

func TestComputeStatisticsAttendanceRate(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleMemberBook{}).Init()
	member := seedMember(t, db)
	admin := model.User{Username: "owner2", Email: "owner2@example.com", Password: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	now := time.Now()
	for i, status := range []model.RegistrationStatus{
		model.RegistrationAttended,
		model.RegistrationApproved,
		model.RegistrationCancelled, // 取消的不计入分母
	} {
		a := model.Activity{Title: "活动", StartDate: now, EndDate: now.Add(time.Hour), OwnerID: admin.ID, Type: model.ActivityTypeOther}
		require.NoError(t, db.Create(&a).Error)
		reg := model.Registration{UserID: member.ID, ActivityID: a.ID, Status: status}
		require.NoError(t, db.Create(&reg).Error)
		_ = i
	}

	stats, err := computeStatistics(db, member.ID)
	require.NoError(t, err)
	// 两条有效报名，一条已参加
	require.Equal(t, 50, stats.AttendanceRate)
}

func TestFeesByYearGrouping(t *testing.T) {
	fees := []model.UnionFeeStatus{
		{UserID: 1, Year: 2025, Quarter: 2, Paid: true},
		{UserID: 1, Year: 2024, Quarter: 1, Paid: true},
		{UserID: 1, Year: 2025, Quarter: 1, Paid: false},
	}

	grouped := feesByYear(fees)
	require.Len(t, grouped, 2)

	// 年份倒序
	require.Equal(t, 2025, grouped[0]["year"])
	require.Equal(t, 2024, grouped[1]["year"])

	// 季度正序
	quarters := grouped[0]["quarters"].([]model.UnionFeeStatus)
	require.Equal(t, 1, quarters[0].Quarter)
	require.Equal(t, 2, quarters[1].Quarter)
}
