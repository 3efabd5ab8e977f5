package jwt

import (
	"testing"
	"union-activity-system/internal/model"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := CreateToken(Payload{
		UserID:   42,
		Username: "zhangsan",
		Role:     model.RoleOfficer,
	})
	require.NotEmpty(t, token)

	claims, valid := ParseToken(token)
	require.True(t, valid)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "zhangsan", claims.Username)
	require.Equal(t, model.RoleOfficer, claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, valid := ParseToken("not-a-token")
	require.False(t, valid)

	_, valid = ParseToken("")
	require.False(t, valid)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token := CreateToken(Payload{UserID: 1, Username: "a", Role: model.RoleMember})
	_, valid := ParseToken(token + "xx")
	require.False(t, valid)
}
