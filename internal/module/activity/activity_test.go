package activity

import (
	"net/http"
	"strconv"
	"testing"
	"time"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
)

func TestCreateActivityBroadcast(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	active := createUser(t, db, "active", model.RoleMember)
	inactive := model.User{Username: "inactive", Email: "inactive@example.com", Password: "x", Role: model.RoleMember, IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)

	now := time.Now()
	resp := test.DoRequest(t, CreateActivity,
		test.WithPayload(claimsOf(admin)),
		test.WithBody(CreateActivityReq{
			Title:            "春季郊游",
			StartDate:        now.Add(24 * time.Hour),
			EndDate:          now.Add(30 * time.Hour),
			Type:             model.ActivityTypeCulture,
			SendNotification: true,
		}))
	test.NoError(t, resp)

	// 启用用户收到广播，停用用户不收
	var activeCount, inactiveCount int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", active.ID).Count(&activeCount).Error)
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", inactive.ID).Count(&inactiveCount).Error)
	require.Equal(t, int64(1), activeCount)
	require.Equal(t, int64(0), inactiveCount)
}

func TestCreateActivityNoBroadcast(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)

	now := time.Now()
	resp := test.DoRequest(t, CreateActivity,
		test.WithPayload(claimsOf(admin)),
		test.WithBody(CreateActivityReq{
			Title:     "内部会议",
			StartDate: now.Add(24 * time.Hour),
			EndDate:   now.Add(26 * time.Hour),
		}))
	test.NoError(t, resp)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", member.ID).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestCreateActivityInvalidDates(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)

	now := time.Now()
	resp := test.DoRequest(t, CreateActivity,
		test.WithPayload(claimsOf(admin)),
		test.WithBody(CreateActivityReq{
			Title:     "时间倒挂",
			StartDate: now.Add(24 * time.Hour),
			EndDate:   now.Add(12 * time.Hour),
		}))
	require.Equal(t, int32(40000), resp.Code)
}

func TestListActivitiesStatusFilter(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	now := time.Now()

	// 一场未开始，一场进行中，一场已结束
	for _, window := range [][2]time.Time{
		{now.Add(24 * time.Hour), now.Add(48 * time.Hour)},
		{now.Add(-time.Hour), now.Add(time.Hour)},
		{now.Add(-48 * time.Hour), now.Add(-24 * time.Hour)},
	} {
		a := model.Activity{Title: "活动", StartDate: window[0], EndDate: window[1], OwnerID: admin.ID, Type: model.ActivityTypeOther}
		require.NoError(t, db.Create(&a).Error)
	}

	for status, want := range map[model.ActivityStatus]float64{
		model.ActivityUpcoming:  1,
		model.ActivityOngoing:   1,
		model.ActivityCompleted: 1,
	} {
		resp := test.DoRequest(t, ListActivities,
			test.WithMethod(http.MethodGet),
			test.WithQuery("status="+string(status)),
			test.WithPayload(claimsOf(admin)),
		)
		test.NoError(t, resp)
		data := resp.Data.(map[string]any)
		require.Equal(t, want, data["total"], "status %s", status)
	}
}

func TestUpdateActivityOwnerOnly(t *testing.T) {
	db := setupLifecycle(t)
	owner := createUser(t, db, "owner", model.RoleOfficer)
	other := createUser(t, db, "other", model.RoleOfficer)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	a := createActivity(t, db, owner.ID, 0, nil)

	title := "改名"
	update := func(u model.User) int32 {
		resp := test.DoRequest(t, UpdateActivity,
			test.WithParam("id", strconv.Itoa(int(a.ID))),
			test.WithPayload(claimsOf(u)),
			test.WithBody(UpdateActivityReq{Title: &title}),
		)
		return resp.Code
	}

	require.Equal(t, int32(40300), update(other))
	require.Equal(t, int32(200), update(owner))
	require.Equal(t, int32(200), update(admin))
}
