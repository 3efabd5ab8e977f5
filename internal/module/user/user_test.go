package user

import (
	"testing"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/test"
	"union-activity-system/tools"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUser(t *testing.T) *gorm.DB {
	db := test.SetupDB(t)
	(&ModuleUser{}).Init()
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, role model.Role, active bool) model.User {
	user := model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: tools.PasswordEncrypt(password),
		FullName: username,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := setupUser(t)
	seedUser(t, db, "zhangsan", "pass1234", model.RoleMember, true)

	resp := test.DoRequest(t, Login, test.WithBody(LoginReq{
		Username: "zhangsan",
		Password: "pass1234",
	}))
	test.NoError(t, resp)

	data := resp.Data.(map[string]any)
	token, ok := data["token"].(string)
	require.True(t, ok)
	claims, valid := jwt.ParseToken(token)
	require.True(t, valid)
	require.Equal(t, "zhangsan", claims.Username)
	require.Equal(t, model.RoleMember, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupUser(t)
	seedUser(t, db, "zhangsan", "pass1234", model.RoleMember, true)

	resp := test.DoRequest(t, Login, test.WithBody(LoginReq{
		Username: "zhangsan",
		Password: "wrong",
	}))
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupUser(t)
	seedUser(t, db, "zhangsan", "pass1234", model.RoleMember, false)

	resp := test.DoRequest(t, Login, test.WithBody(LoginReq{
		Username: "zhangsan",
		Password: "pass1234",
	}))
	require.Equal(t, response.ErrForbidden.Code, resp.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	setupUser(t)

	resp := test.DoRequest(t, Login, test.WithBody(LoginReq{
		Username: "nobody",
		Password: "pass1234",
	}))
	require.Equal(t, response.ErrNotFound.Code, resp.Code)
}

func TestCreateUserDuplicate(t *testing.T) {
	db := setupUser(t)
	officer := seedUser(t, db, "officer", "pass1234", model.RoleOfficer, true)

	payload := &jwt.Claims{UserID: officer.ID, Username: officer.Username, Role: officer.Role}

	resp := test.DoRequest(t, CreateUser,
		test.WithPayload(payload),
		test.WithBody(CreateUserReq{
			Username: "newbie",
			Email:    "newbie@example.com",
			Password: "abc12345",
			FullName: "新同学",
		}))
	test.NoError(t, resp)

	// 重复用户名
	resp = test.DoRequest(t, CreateUser,
		test.WithPayload(payload),
		test.WithBody(CreateUserReq{
			Username: "newbie",
			Email:    "other@example.com",
			Password: "abc12345",
			FullName: "另一个",
		}))
	require.Equal(t, response.ErrAlreadyExists.Code, resp.Code)
}

func TestCreateAdminRequiresAdmin(t *testing.T) {
	db := setupUser(t)
	officer := seedUser(t, db, "officer", "pass1234", model.RoleOfficer, true)
	admin := seedUser(t, db, "admin", "pass1234", model.RoleAdmin, true)

	body := CreateUserReq{
		Username: "newadmin",
		Email:    "newadmin@example.com",
		Password: "abc12345",
		FullName: "新管理员",
		Role:     model.RoleAdmin,
	}

	resp := test.DoRequest(t, CreateUser,
		test.WithPayload(&jwt.Claims{UserID: officer.ID, Username: officer.Username, Role: officer.Role}),
		test.WithBody(body))
	test.ErrorEqual(t, response.ErrForbidden, resp)

	resp = test.DoRequest(t, CreateUser,
		test.WithPayload(&jwt.Claims{UserID: admin.ID, Username: admin.Username, Role: admin.Role}),
		test.WithBody(body))
	test.NoError(t, resp)
}

func TestPasswordStrength(t *testing.T) {
	require.Error(t, validatePasswordStrength(""))
	require.Error(t, validatePasswordStrength("short1"))
	require.Error(t, validatePasswordStrength("onlyletters"))
	require.Error(t, validatePasswordStrength("12345678"))
	require.NoError(t, validatePasswordStrength("abc12345"))
}
