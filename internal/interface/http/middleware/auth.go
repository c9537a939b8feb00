package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/persistence/redis"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/jwt"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

const ctxEmailKey = "email"

// AuthMiddleware JWT认证中间件
// 设计说明:
// 1. 从Header提取Token并验证签名与有效期
// 2. 黑名单查询尽力而为:缓存故障不阻断请求链路
// 3. 验证通过后将邮箱声明注入Context供Handler使用
type AuthMiddleware struct {
	jwtManager  *jwt.Manager
	tokenStore  *redis.TokenStore
	userService user.Service
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, tokenStore *redis.TokenStore, userService user.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		tokenStore:  tokenStore,
		userService: userService,
	}
}

// RequireAuth 要求携带有效Token
// 无凭证与凭证无效是两类失败:缺失Header返回401,无效/过期返回403
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		tokenString := parts[1]

		if m.tokenStore != nil {
			revoked, err := m.tokenStore.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				log.Printf("黑名单查询失败: %v", err)
			} else if revoked {
				response.Error(c, apperrors.ErrForbidden)
				c.Abort()
				return
			}
		}

		claims, err := m.jwtManager.Parse(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ctxEmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin 要求当前用户为管理员,置于RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetEmail(c)
		if email == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		t, err := m.userService.TypeByEmail(c.Request.Context(), email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if t != user.TypeAdmin {
			response.Error(c, apperrors.ErrNotAdmin)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(ctxEmailKey); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// MatchesIdentity 校验查询参数携带的邮箱与Token声明一致
// 不一致时写出403并返回false,调用方直接return
func MatchesIdentity(c *gin.Context, queryEmail string) bool {
	if queryEmail != GetEmail(c) {
		response.Error(c, apperrors.ErrForbidden)
		return false
	}
	return true
}
