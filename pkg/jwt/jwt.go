package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// Manager JWT管理器
// 设计说明:
// 1. 身份主体是邮箱(本系统没有自增用户ID,用户以邮箱为业务主键)
// 2. 只签发Access Token,有效期短(默认1小时),到期后客户端重新走/jwt获取
// 3. HS256对称签名,密钥来自配置
type Manager struct {
	secret string        // 签名密钥
	expire time.Duration // Access Token有效期
}

// NewManager 创建JWT管理器
func NewManager(secret string, expire time.Duration) *Manager {
	return &Manager{
		secret: secret,
		expire: expire,
	}
}

// Claims 自定义JWT Claims
// 嵌入jwt.RegisteredClaims获取标准字段(exp、iat、nbf等)
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate 为指定邮箱签发Access Token
func (m *Manager) Generate(email string) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "bookkeeper",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "sign access token failed")
	}

	return signed, nil
}

// Parse 解析并验证Token
// 验证内容:签名、过期时间(exp)、生效时间(nbf)
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法,防止alg=none或非对称算法混淆攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrForbidden
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrForbidden
}

// Expire 返回Token有效期(供黑名单TTL使用)
func (m *Manager) Expire() time.Duration {
	return m.expire
}
