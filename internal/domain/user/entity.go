package user

import (
	"time"
)

// Type 用户角色
type Type string

const (
	TypeBuyer  Type = "buyer"
	TypeSeller Type = "seller"
	TypeAdmin  Type = "admin"
)

// Valid 判断是否为合法角色
func (t Type) Valid() bool {
	switch t {
	case TypeBuyer, TypeSeller, TypeAdmin:
		return true
	}
	return false
}

// User 用户实体(聚合根)
// 设计说明:
// 1. 邮箱是业务主键,注册时查重(重复返回409)
// 2. 本系统不存密码:身份由前端认证服务建立,后端凭邮箱签发Token
// 3. Verified只能由管理员置真,上架图书时复制到图书上
type User struct {
	ID        string
	Email     string
	Name      string
	Type      Type
	Verified  bool
	CreatedAt time.Time
}

// New 创建新用户(工厂方法)
func New(email, name string, t Type) *User {
	return &User{
		Email:     email,
		Name:      name,
		Type:      t,
		Verified:  false,
		CreatedAt: time.Now(),
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Type == TypeAdmin
}
