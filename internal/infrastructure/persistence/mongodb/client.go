package mongodb

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/config"
)

// 集合名称
// 与历史数据保持一致(TheStoryKeeper库的既有集合)
const (
	collBooks     = "Books"
	collOrders    = "Orders"
	collUsers     = "Users"
	collAdvertise = "AdvertiseItems"
	collWishList  = "WishList"
	collPayments  = "Payments"
	collCounters  = "Counters" // 类目ID计数器(本版本新增)
)

// Database 文档库句柄
// 设计说明:进程启动时构造一次,显式注入到各仓储,
// 进程退出时调用Close,替代历史实现的包级全局连接
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDatabase 建立文档库连接并准备索引
func NewDatabase(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI()).
		SetMaxPoolSize(cfg.Mongo.MaxPool).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}

	// 启动时探活:连不上直接失败退出,不要带病服务
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	d := &Database{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
	}

	if err := d.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	log.Printf("document store connected: %s/%s", cfg.Mongo.Host, cfg.Mongo.Database)
	return d, nil
}

// ensureIndexes 准备必要的索引
// email唯一索引兜底注册查重的并发窗口;其余为查询加速
func (d *Database) ensureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = d.db.Collection(collBooks).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "sellerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = d.db.Collection(collOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = d.db.Collection(collWishList).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}

// Collection 返回集合句柄(仓储实现内部使用)
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Close 断开文档库连接
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
