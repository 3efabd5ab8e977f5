package activity

import (
	"net/http"
	"strconv"
	"testing"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLifecycle(t *testing.T) *gorm.DB {
	db := test.SetupDB(t)
	(&ModuleActivity{}).Init()
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role model.Role) model.User {
	user := model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		FullName: username,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createActivity(t *testing.T, db *gorm.DB, owner uint, max int, deadline *time.Time) model.Activity {
	now := time.Now()
	a := model.Activity{
		Title:                "志愿服务日",
		StartDate:            now.Add(24 * time.Hour),
		EndDate:              now.Add(48 * time.Hour),
		OwnerID:              owner,
		Type:                 model.ActivityTypeVolunteer,
		MaxParticipants:      max,
		RegistrationDeadline: deadline,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func claimsOf(u model.User) *jwt.Claims {
	return &jwt.Claims{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func register(t *testing.T, activityID uint, u model.User) response.ResponseBody {
	return test.DoRequest(t, Register,
		test.WithParam("id", strconv.Itoa(int(activityID))),
		test.WithPayload(claimsOf(u)),
	)
}

func TestRegisterCreatesPending(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	resp := test.DoRequest(t, Register,
		test.WithParam("id", strconv.Itoa(int(a.ID))),
		test.WithPayload(claimsOf(member)),
		test.WithBody(RegisterReq{Reason: "想参加", PhoneNumber: "13800138000"}),
	)
	test.NoError(t, resp)

	var reg model.Registration
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&reg).Error)
	require.Equal(t, model.RegistrationPending, reg.Status)
	require.Contains(t, reg.Notes, "想参加")

	// 电话号码回写到用户资料
	var updated model.User
	require.NoError(t, db.First(&updated, member.ID).Error)
	require.Equal(t, "13800138000", updated.PhoneNumber)

	// 管理员和本人各收到一条通知
	var adminNotes, selfNotes int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", admin.ID).Count(&adminNotes).Error)
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", member.ID).Count(&selfNotes).Error)
	require.Equal(t, int64(1), adminNotes)
	require.Equal(t, int64(1), selfNotes)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	test.NoError(t, register(t, a.ID, member))

	// 待审核、已通过、已拒绝、已参加状态下重复报名都要被拒绝
	for _, status := range []model.RegistrationStatus{
		model.RegistrationPending, model.RegistrationApproved,
		model.RegistrationRejected, model.RegistrationAttended,
	} {
		require.NoError(t, db.Model(&model.Registration{}).
			Where("user_id = ? AND activity_id = ?", member.ID, a.ID).
			Update("status", status).Error)

		resp := register(t, a.ID, member)
		test.ErrorEqual(t, response.ErrAlreadyRegistered, resp)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		require.Equal(t, string(status), data["status"])
	}
}

func TestRegisterReactivatesCancelled(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	test.NoError(t, register(t, a.ID, member))

	var before model.Registration
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&before).Error)
	require.NoError(t, db.Model(&before).Update("status", model.RegistrationCancelled).Error)

	// 再次报名复用同一行，回到待审核
	test.NoError(t, register(t, a.ID, member))

	var after model.Registration
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&after).Error)
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, model.RegistrationPending, after.Status)

	var count int64
	require.NoError(t, db.Model(&model.Registration{}).
		Where("user_id = ? AND activity_id = ?", member.ID, a.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRegisterDeadlineExpired(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	past := time.Now().Add(-time.Hour)
	a := createActivity(t, db, admin.ID, 0, &past)

	resp := register(t, a.ID, member)
	test.ErrorEqual(t, response.ErrDeadlineExpired, resp)
}

func TestRegisterCapacity(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	a := createActivity(t, db, admin.ID, 2, nil)

	userA := createUser(t, db, "usera", model.RoleMember)
	userB := createUser(t, db, "userb", model.RoleMember)
	userC := createUser(t, db, "userc", model.RoleMember)
	userD := createUser(t, db, "userd", model.RoleMember)

	// A 已通过占一个名额，B 待审核不占
	test.NoError(t, register(t, a.ID, userA))
	require.NoError(t, db.Model(&model.Registration{}).
		Where("user_id = ?", userA.ID).Update("status", model.RegistrationApproved).Error)
	test.NoError(t, register(t, a.ID, userB))

	// 名额 2，已占 1，C 仍可报名
	test.NoError(t, register(t, a.ID, userC))
	require.NoError(t, db.Model(&model.Registration{}).
		Where("user_id = ?", userC.ID).Update("status", model.RegistrationAttended).Error)

	// 已通过 + 已参加 = 2，满员
	resp := register(t, a.ID, userD)
	test.ErrorEqual(t, response.ErrActivityFull, resp)

	// 取消和拒绝不占名额，释放后可以再报
	require.NoError(t, db.Model(&model.Registration{}).
		Where("user_id = ?", userA.ID).Update("status", model.RegistrationCancelled).Error)
	test.NoError(t, register(t, a.ID, userD))
}

func TestCancelRegistration(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	cancel := func() response.ResponseBody {
		return test.DoRequest(t, CancelRegistration,
			test.WithParam("id", strconv.Itoa(int(a.ID))),
			test.WithPayload(claimsOf(member)),
		)
	}

	// 未报名
	test.ErrorEqual(t, response.ErrNotRegistered, cancel())

	test.NoError(t, register(t, a.ID, member))

	// 待审核可以取消
	test.NoError(t, cancel())
	var reg model.Registration
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&reg).Error)
	require.Equal(t, model.RegistrationCancelled, reg.Status)

	// 重复取消
	test.ErrorEqual(t, response.ErrAlreadyCancelled, cancel())

	// 已拒绝不允许取消
	require.NoError(t, db.Model(&reg).Update("status", model.RegistrationRejected).Error)
	resp := cancel()
	require.Equal(t, response.ErrInvalidState.Code, resp.Code)

	// 已参加不允许取消
	require.NoError(t, db.Model(&reg).Update("status", model.RegistrationAttended).Error)
	resp = cancel()
	require.Equal(t, response.ErrInvalidState.Code, resp.Code)

	// 已通过可以取消
	require.NoError(t, db.Model(&reg).Update("status", model.RegistrationApproved).Error)
	test.NoError(t, cancel())
}

func TestMarkAttendance(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	test.NoError(t, register(t, a.ID, member))

	mark := func(userID uint, attended bool) response.ResponseBody {
		return test.DoRequest(t, MarkAttendance,
			test.WithParam("id", strconv.Itoa(int(a.ID))),
			test.WithPayload(claimsOf(admin)),
			test.WithBody(MarkAttendanceReq{UserID: userID, Attended: &attended}),
		)
	}

	// 未报名的用户
	other := createUser(t, db, "other", model.RoleMember)
	resp := mark(other.ID, true)
	require.Equal(t, response.ErrNotRegistered.Code, resp.Code)

	// attended=false 不改变任何状态
	test.NoError(t, mark(member.ID, false))
	var reg model.Registration
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&reg).Error)
	require.Equal(t, model.RegistrationPending, reg.Status)
	require.Nil(t, reg.AttendanceDate)

	// attended=true 记为已参加并盖时间戳
	test.NoError(t, mark(member.ID, true))
	require.NoError(t, db.Where("user_id = ? AND activity_id = ?", member.ID, a.ID).First(&reg).Error)
	require.Equal(t, model.RegistrationAttended, reg.Status)
	require.NotNil(t, reg.AttendanceDate)
}

func TestRegistrationStatus(t *testing.T) {
	db := setupLifecycle(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	member := createUser(t, db, "member", model.RoleMember)
	a := createActivity(t, db, admin.ID, 0, nil)

	status := func() response.ResponseBody {
		return test.DoRequest(t, RegistrationStatus,
			test.WithMethod(http.MethodGet),
			test.WithParam("id", strconv.Itoa(int(a.ID))),
			test.WithPayload(claimsOf(member)),
		)
	}

	resp := status()
	test.NoError(t, resp)
	data := resp.Data.(map[string]any)
	require.Equal(t, false, data["registered"])

	test.NoError(t, register(t, a.ID, member))

	resp = status()
	test.NoError(t, resp)
	data = resp.Data.(map[string]any)
	require.Equal(t, true, data["registered"])
	require.Equal(t, string(model.RegistrationPending), data["status"])

	_, err := database.DB.DB()
	require.NoError(t, err)
}
