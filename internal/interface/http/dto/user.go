package dto

import (
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
)

// SignupRequest 注册请求体
type SignupRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Type  string `json:"type" binding:"required,oneof=buyer seller admin"`
}

// UserResponse 用户响应体
type UserResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Type      string    `json:"type"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse 从领域实体构建响应
func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Type:      string(u.Type),
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses 批量构建
func NewUserResponses(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// TokenResponse 签发Token响应体
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// UserTypeResponse 用户角色响应体
type UserTypeResponse struct {
	Type string `json:"type"`
}
