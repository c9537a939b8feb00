//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;main.go中的手动组装
// 与此处声明等价,迁移到生成代码时替换main.go的组装段即可
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/thestorykeeper/bookkeeper/internal/application/book"
	apporder "github.com/thestorykeeper/bookkeeper/internal/application/order"
	apppayment "github.com/thestorykeeper/bookkeeper/internal/application/payment"
	appuser "github.com/thestorykeeper/bookkeeper/internal/application/user"
	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/config"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/event"
	infrapayment "github.com/thestorykeeper/bookkeeper/internal/infrastructure/payment"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/persistence/mongodb"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/persistence/redis"
	httpiface "github.com/thestorykeeper/bookkeeper/internal/interface/http"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/handler"
	"github.com/thestorykeeper/bookkeeper/internal/interface/http/middleware"
	"github.com/thestorykeeper/bookkeeper/pkg/jwt"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mongodb.NewDatabase,
	redis.NewClient,
	event.NewPublisher,
	provideStripeGateway,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mongodb.NewBookRepository,
	mongodb.NewAdvertiseRepository,
	mongodb.NewOrderRepository,
	mongodb.NewUserRepository,
	mongodb.NewPaymentRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	user.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewPublishBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewDeleteProductUseCase,
	appbook.NewAdvertiseUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewWishlistUseCase,
	apporder.NewCompletePaymentUseCase,
	appuser.NewSignupUseCase,
	appuser.NewIssueTokenUseCase,
	appuser.NewAdminUseCase,
	appuser.NewDeleteUserUseCase,
	apppayment.NewCreateIntentUseCase,
	apppayment.NewRecordPaymentUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideTokenStore,
	provideCatalogCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewOrderHandler,
	handler.NewUserHandler,
	handler.NewPaymentHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// provideTokenStore 创建Token黑名单存储
func provideTokenStore(client *goredis.Client) *redis.TokenStore {
	return redis.NewTokenStore(client)
}

// provideCatalogCache 创建目录缓存
func provideCatalogCache(client *goredis.Client) *redis.CatalogCache {
	return redis.NewCatalogCache(client, 10*time.Minute)
}

// provideStripeGateway 创建Stripe网关(以接口类型暴露)
func provideStripeGateway(cfg *config.Config) infrapayment.Gateway {
	return infrapayment.NewStripeGateway(cfg)
}

// InitializeApp 组装整个应用,返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		httpiface.NewRouter,
	)
	return nil, nil
}
