package registration

import (
	"strconv"
	"testing"
	"time"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRegistration(t *testing.T, db *gorm.DB, status model.RegistrationStatus) (model.User, model.Registration) {
	member := model.User{Username: "member", Email: "member@example.com", Password: "x", Role: model.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&member).Error)
	admin := model.User{Username: "admin", Email: "admin@example.com", Password: "x", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	now := time.Now()
	a := model.Activity{Title: "读书会", StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour), OwnerID: admin.ID, Type: model.ActivityTypeStudy}
	require.NoError(t, db.Create(&a).Error)

	reg := model.Registration{UserID: member.ID, ActivityID: a.ID, Status: status}
	require.NoError(t, db.Create(&reg).Error)
	return member, reg
}

func TestReviewApprove(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleRegistration{}).Init()
	member, reg := seedRegistration(t, db, model.RegistrationPending)

	resp := test.DoRequest(t, Review,
		test.WithParam("id", strconv.Itoa(int(reg.ID))),
		test.WithPayload(&jwt.Claims{UserID: 999, Username: "reviewer", Role: model.RoleOfficer}),
		test.WithBody(ReviewReq{Action: "approve"}),
	)
	test.NoError(t, resp)

	var updated model.Registration
	require.NoError(t, db.First(&updated, reg.ID).Error)
	require.Equal(t, model.RegistrationApproved, updated.Status)

	// 审核结果通知到报名人
	var count int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("user_id = ?", member.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestReviewReject(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleRegistration{}).Init()
	_, reg := seedRegistration(t, db, model.RegistrationPending)

	resp := test.DoRequest(t, Review,
		test.WithParam("id", strconv.Itoa(int(reg.ID))),
		test.WithPayload(&jwt.Claims{UserID: 999, Username: "reviewer", Role: model.RoleOfficer}),
		test.WithBody(ReviewReq{Action: "reject"}),
	)
	test.NoError(t, resp)

	var updated model.Registration
	require.NoError(t, db.First(&updated, reg.ID).Error)
	require.Equal(t, model.RegistrationRejected, updated.Status)
}

func TestReviewNonPending(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleRegistration{}).Init()
	_, reg := seedRegistration(t, db, model.RegistrationApproved)

	resp := test.DoRequest(t, Review,
		test.WithParam("id", strconv.Itoa(int(reg.ID))),
		test.WithPayload(&jwt.Claims{UserID: 999, Username: "reviewer", Role: model.RoleOfficer}),
		test.WithBody(ReviewReq{Action: "approve"}),
	)
	require.Equal(t, response.ErrInvalidState.Code, resp.Code)
}

func TestReviewInvalidAction(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleRegistration{}).Init()
	_, reg := seedRegistration(t, db, model.RegistrationPending)

	resp := test.DoRequest(t, Review,
		test.WithParam("id", strconv.Itoa(int(reg.ID))),
		test.WithPayload(&jwt.Claims{UserID: 999, Username: "reviewer", Role: model.RoleOfficer}),
		test.WithBody(ReviewReq{Action: "maybe"}),
	)
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}
