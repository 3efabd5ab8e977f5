package notification

import (
	"net/http"
	"strconv"
	"testing"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/test"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, db *gorm.DB) (model.User, []model.Notification) {
	user := model.User{Username: "member", Email: "member@example.com", Password: "x", Role: model.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	notifications := []model.Notification{
		{UserID: user.ID, Content: "第一条"},
		{UserID: user.ID, Content: "第二条"},
	}
	require.NoError(t, db.Create(&notifications).Error)
	return user, notifications
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleNotification{}).Init()
	user, notifications := seedNotifications(t, db)
	payload := &jwt.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}

	count := func() float64 {
		resp := test.DoRequest(t, UnreadCount,
			test.WithMethod(http.MethodGet), test.WithPayload(payload))
		test.NoError(t, resp)
		return resp.Data.(map[string]any)["count"].(float64)
	}

	require.Equal(t, float64(2), count())

	resp := test.DoRequest(t, MarkRead,
		test.WithParam("id", strconv.Itoa(int(notifications[0].ID))),
		test.WithPayload(payload))
	test.NoError(t, resp)
	require.Equal(t, float64(1), count())

	resp = test.DoRequest(t, MarkAllRead, test.WithPayload(payload))
	test.NoError(t, resp)
	require.Equal(t, float64(0), count())
}

func TestMarkReadOnlyOwn(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleNotification{}).Init()
	_, notifications := seedNotifications(t, db)

	other := model.User{Username: "other", Email: "other@example.com", Password: "x", Role: model.RoleMember, IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	// 别人的通知对自己而言不存在
	resp := test.DoRequest(t, MarkRead,
		test.WithParam("id", strconv.Itoa(int(notifications[0].ID))),
		test.WithPayload(&jwt.Claims{UserID: other.ID, Username: other.Username, Role: other.Role}))
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}

func TestBroadcastTargets(t *testing.T) {
	db := test.SetupDB(t)
	(&ModuleNotification{}).Init()

	users := make([]model.User, 3)
	for i, name := range []string{"a", "b", "c"} {
		users[i] = model.User{Username: name, Email: name + "@example.com", Password: "x", Role: model.RoleMember, IsActive: name != "c"}
		require.NoError(t, db.Create(&users[i]).Error)
	}

	// 指定用户
	resp := test.DoRequest(t, Broadcast,
		test.WithPayload(&jwt.Claims{UserID: 1, Username: "a", Role: model.RoleAdmin}),
		test.WithBody(BroadcastReq{Content: "点名通知", UserIDs: []uint{users[1].ID}}))
	test.NoError(t, resp)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", users[1].ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// 不指定则广播给启用用户，跳过停用的 c
	resp = test.DoRequest(t, Broadcast,
		test.WithPayload(&jwt.Claims{UserID: 1, Username: "a", Role: model.RoleAdmin}),
		test.WithBody(BroadcastReq{Content: "全员通知"}))
	test.NoError(t, resp)

	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", users[2].ID).Count(&count).Error)
	require.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", users[0].ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
