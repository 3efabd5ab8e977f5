package jwt

import (
	"time"
	"union-activity-system/config"
	"union-activity-system/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 登录凭证负载
type Claims struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Payload 创建令牌所需的用户信息
type Payload struct {
	UserID   uint
	Username string
	Role     model.Role
}

// CreateToken 签发访问令牌
func CreateToken(p Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		UserID:   p.UserID,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "union-activity-system",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.AccessExpire) * time.Second)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// 密钥为固定配置，签名失败属于程序错误
		panic(err)
	}
	return signed
}

// ParseToken 解析并校验令牌，返回负载和是否有效
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
