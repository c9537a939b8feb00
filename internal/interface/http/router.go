// Package http 注册HTTP路由
// 路径保持与历史API完全一致(无/api/v1前缀),存量前端无需改动
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thestorykeeper/bookkeeper/internal/interface/http/handler"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/middleware"
	"github.com/thestorykeeper/bookkeeper/pkg/response"
)

// NewRouter 组装路由
func NewRouter(
	bookHandler *handler.BookHandler,
	orderHandler *handler.OrderHandler,
	userHandler *handler.UserHandler,
	paymentHandler *handler.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	// 健康检查与运维端点
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Book Keeper server is running")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开目录查询
	r.GET("/books", bookHandler.HomeBooks)
	r.GET("/allBooks", bookHandler.AllBooks)
	r.GET("/category/:id", bookHandler.BooksByCategory)
	r.GET("/book/:id", bookHandler.BookByID)
	r.GET("/categories", bookHandler.Categories)
	r.POST("/books", bookHandler.PublishBook)
	r.POST("/advertise", bookHandler.AddAdvertise)

	// 认证与用户
	r.GET("/jwt", userHandler.IssueToken)
	r.POST("/users", userHandler.Signup)

	// 订单与心愿单
	r.POST("/orders", orderHandler.PlaceOrder)
	r.POST("/wishList", orderHandler.AddToWishlist)
	r.GET("/wishList", orderHandler.Wishlist)

	// 支付
	r.GET("/payment/:id", paymentHandler.OrderForPayment)
	r.GET("/payment2/:id", paymentHandler.WishItemForPayment)
	r.POST("/create-payment-intent", paymentHandler.CreateIntent)
	r.PATCH("/payment/status/:id", paymentHandler.CompletePayment)
	r.POST("/payments", paymentHandler.RecordPayment)

	// 登录后路由
	authorized := r.Group("")
	authorized.Use(authMiddleware.RequireAuth())
	{
		authorized.GET("/myProducts", bookHandler.MyProducts)
		authorized.DELETE("/myProduct/delete/:id", bookHandler.DeleteMyProduct)
		authorized.GET("/advertise", bookHandler.ListAdvertise)
		authorized.GET("/myOrders", orderHandler.MyOrders)
		authorized.GET("/users/type", userHandler.UserType)
	}

	// 管理后台路由
	admin := r.Group("")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.GET("/allSeller", userHandler.AllSellers)
		admin.DELETE("/delete/seller", userHandler.DeleteSeller)
		admin.PATCH("/seller/verify", userHandler.VerifySeller)
		admin.GET("/allBuyer", userHandler.AllBuyers)
		admin.DELETE("/delete/buyer", userHandler.DeleteBuyer)
	}

	r.NoRoute(func(c *gin.Context) {
		response.ErrorWithStatus(c, 404, "No route found")
	})

	return r
}
