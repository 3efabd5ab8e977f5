package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func doAuth(t *testing.T, minRole model.Role, header string) (*httptest.ResponseRecorder, bool) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	passed := false
	handler := Auth(minRole)
	handler(c)
	if !c.IsAborted() {
		passed = true
	}
	return w, passed
}

func TestAuthMissingHeader(t *testing.T) {
	w, passed := doAuth(t, model.RoleMember, "")
	require.False(t, passed)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadToken(t *testing.T) {
	w, passed := doAuth(t, model.RoleMember, "Bearer garbage")
	require.False(t, passed)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoleGate(t *testing.T) {
	memberToken := jwt.CreateToken(jwt.Payload{UserID: 1, Username: "m", Role: model.RoleMember})
	officerToken := jwt.CreateToken(jwt.Payload{UserID: 2, Username: "o", Role: model.RoleOfficer})
	adminToken := jwt.CreateToken(jwt.Payload{UserID: 3, Username: "a", Role: model.RoleAdmin})

	// 普通成员过不了干部门槛
	w, passed := doAuth(t, model.RoleOfficer, "Bearer "+memberToken)
	require.False(t, passed)
	require.Equal(t, http.StatusForbidden, w.Code)

	// 干部和管理员可以
	_, passed = doAuth(t, model.RoleOfficer, "Bearer "+officerToken)
	require.True(t, passed)
	_, passed = doAuth(t, model.RoleOfficer, "Bearer "+adminToken)
	require.True(t, passed)

	// 管理员门槛只有管理员能过
	_, passed = doAuth(t, model.RoleAdmin, "Bearer "+officerToken)
	require.False(t, passed)
	_, passed = doAuth(t, model.RoleAdmin, "Bearer "+adminToken)
	require.True(t, passed)
}
