package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

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
	"github.com/thestorykeeper/bookkeeper/pkg/metrics"
	"github.com/thestorykeeper/bookkeeper/pkg/tracing"
)

// main 主程序入口
// 说明:手动依赖注入,与wire.go中的声明保持一致
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 文档库: %s/%s\n", cfg.Mongo.Host, cfg.Mongo.Database)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 指标注册
	metrics.Init()

	// 3. 链路追踪(可选)
	shutdownTracer := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracer, err = tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
	}

	// 4. 文档库连接(致命依赖,失败即退出)
	db, err := mongodb.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("初始化文档库失败: %v", err)
	}

	// 5. Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 事件发布者(MQ未启用时为空实现)
	events, err := event.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("初始化事件发布者失败: %v", err)
	}

	// 7. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mongodb.NewBookRepository(db)
	advertiseRepo := mongodb.NewAdvertiseRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	tokenStore := redis.NewTokenStore(redisClient)
	catalogCache := redis.NewCatalogCache(redisClient, 10*time.Minute)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
	gateway := infrapayment.NewStripeGateway(cfg)

	// 领域层
	bookService := book.NewService(bookRepo)
	userService := user.NewService(userRepo)

	// 应用层
	publishUseCase := appbook.NewPublishBookUseCase(bookService, userRepo, catalogCache, events)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, catalogCache)
	deleteProductUseCase := appbook.NewDeleteProductUseCase(bookRepo, advertiseRepo, orderRepo)
	advertiseUseCase := appbook.NewAdvertiseUseCase(bookRepo, advertiseRepo)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(orderRepo, bookRepo, advertiseRepo, events)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	wishlistUseCase := apporder.NewWishlistUseCase(orderRepo, bookRepo)
	completePaymentUseCase := apporder.NewCompletePaymentUseCase(orderRepo, bookRepo, events)
	signupUseCase := appuser.NewSignupUseCase(userService)
	issueTokenUseCase := appuser.NewIssueTokenUseCase(userRepo, jwtManager)
	adminUseCase := appuser.NewAdminUseCase(userService)
	deleteUserUseCase := appuser.NewDeleteUserUseCase(userRepo, bookRepo, advertiseRepo, orderRepo)
	createIntentUseCase := apppayment.NewCreateIntentUseCase(gateway)
	recordPaymentUseCase := apppayment.NewRecordPaymentUseCase(paymentRepo)

	// 接口层
	bookHandler := handler.NewBookHandler(publishUseCase, listBooksUseCase, deleteProductUseCase, advertiseUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, listOrdersUseCase, wishlistUseCase)
	userHandler := handler.NewUserHandler(signupUseCase, issueTokenUseCase, adminUseCase, deleteUserUseCase)
	paymentHandler := handler.NewPaymentHandler(createIntentUseCase, recordPaymentUseCase, completePaymentUseCase, listOrdersUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, tokenStore, userService)

	// 8. 路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpiface.NewRouter(bookHandler, orderHandler, userHandler, paymentHandler, authMiddleware)

	// 9. 启动HTTP服务(支持优雅关闭)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 Book Keeper server is running on port: %d\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 10. 等待退出信号,依序释放资源
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号,开始优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP服务关闭失败: %v", err)
	}
	if err := events.Close(); err != nil {
		log.Printf("事件发布者关闭失败: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Redis关闭失败: %v", err)
	}
	if err := db.Close(ctx); err != nil {
		log.Printf("文档库关闭失败: %v", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("链路追踪关闭失败: %v", err)
	}

	log.Println("服务已退出")
}
