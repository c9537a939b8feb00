package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "github.com/thestorykeeper/bookkeeper/internal/application/user"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/dto"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/middleware"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

// UserHandler 用户与管理后台HTTP处理器
type UserHandler struct {
	signupUseCase *appuser.SignupUseCase
	tokenUseCase  *appuser.IssueTokenUseCase
	adminUseCase  *appuser.AdminUseCase
	deleteUseCase *appuser.DeleteUserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	signupUseCase *appuser.SignupUseCase,
	tokenUseCase *appuser.IssueTokenUseCase,
	adminUseCase *appuser.AdminUseCase,
	deleteUseCase *appuser.DeleteUserUseCase,
) *UserHandler {
	return &UserHandler{
		signupUseCase: signupUseCase,
		tokenUseCase:  tokenUseCase,
		adminUseCase:  adminUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// IssueToken 签发Access Token
// GET /jwt?email=&state=
// 未注册邮箱返回403与空accessToken(保持历史响应形状);
// state非空表示注册握手,未注册邮箱也签发
func (h *UserHandler) IssueToken(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperrors.ErrInvalidParams)
		return
	}

	token, err := h.tokenUseCase.Execute(c.Request.Context(), email, c.Query("state") != "")
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, dto.TokenResponse{AccessToken: ""})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TokenResponse{AccessToken: token})
}

// Signup 用户注册
// POST /users
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	u, err := h.signupUseCase.Execute(c.Request.Context(), appuser.SignupRequest{
		Email: req.Email,
		Name:  req.Name,
		Type:  req.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewUserResponse(u))
}

// UserType 查询用户角色
// GET /users/type?email= (auth)
func (h *UserHandler) UserType(c *gin.Context) {
	email := c.Query("email")
	if !middleware.MatchesIdentity(c, email) {
		return
	}

	t, err := h.adminUseCase.TypeOf(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UserTypeResponse{Type: string(t)})
}

// AllSellers 全部卖家
// GET /allSeller (auth+admin)
func (h *UserHandler) AllSellers(c *gin.Context) {
	sellers, err := h.adminUseCase.ListSellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserResponses(sellers))
}

// AllBuyers 全部买家
// GET /allBuyer (auth+admin)
func (h *UserHandler) AllBuyers(c *gin.Context) {
	buyers, err := h.adminUseCase.ListBuyers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewUserResponses(buyers))
}

// VerifySeller 认证卖家
// PATCH /seller/verify?email= (auth+admin)
func (h *UserHandler) VerifySeller(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperrors.ErrInvalidParams)
		return
	}

	if err := h.adminUseCase.VerifySeller(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"verified": true})
}

// DeleteSeller 删除卖家(级联清理其图书、广告与孤儿订单)
// DELETE /delete/seller?email= (auth+admin)
func (h *UserHandler) DeleteSeller(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperrors.ErrInvalidParams)
		return
	}

	if err := h.deleteUseCase.DeleteSeller(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// DeleteBuyer 删除买家(pending订单的图书回到货架)
// DELETE /delete/buyer?email= (auth+admin)
func (h *UserHandler) DeleteBuyer(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, apperrors.ErrInvalidParams)
		return
	}

	if err := h.deleteUseCase.DeleteBuyer(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
