package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// advertiseDocument 广告位持久化模型
// 广告条目是商品的快照投影,商品售出后由下单流程摘除
type advertiseDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"productId"`
	Title     string             `bson:"title"`
	Picture   string             `bson:"picture,omitempty"`
	Price     int64              `bson:"price"`
	Advertise bool               `bson:"advertise"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func toAdvertiseEntity(doc *advertiseDocument) *book.AdvertiseItem {
	return &book.AdvertiseItem{
		ID:        doc.ID.Hex(),
		ProductID: doc.ProductID,
		Title:     doc.Title,
		Picture:   doc.Picture,
		Price:     doc.Price,
		Advertise: doc.Advertise,
		CreatedAt: doc.CreatedAt,
	}
}

type advertiseRepository struct {
	advertise *mongo.Collection
}

// NewAdvertiseRepository 创建广告位仓储
func NewAdvertiseRepository(db *Database) book.AdvertiseRepository {
	return &advertiseRepository{advertise: db.Collection(collAdvertise)}
}

// Insert 插入广告条目,回填生成的ID
func (r *advertiseRepository) Insert(ctx context.Context, item *book.AdvertiseItem) error {
	doc := &advertiseDocument{
		ProductID: item.ProductID,
		Title:     item.Title,
		Picture:   item.Picture,
		Price:     item.Price,
		Advertise: item.Advertise,
		CreatedAt: item.CreatedAt,
	}

	result, err := r.advertise.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "insert advertise item failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

// FindAll 返回全部广告条目
func (r *advertiseRepository) FindAll(ctx context.Context) ([]*book.AdvertiseItem, error) {
	cursor, err := r.advertise.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(err, "find advertise items failed")
	}
	defer cursor.Close(ctx)

	items := make([]*book.AdvertiseItem, 0)
	for cursor.Next(ctx) {
		var doc advertiseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode advertise item failed")
		}
		items = append(items, toAdvertiseEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate advertise items failed")
	}

	return items, nil
}

// FindByProduct 按商品ID查找广告条目
func (r *advertiseRepository) FindByProduct(ctx context.Context, productID string) (*book.AdvertiseItem, error) {
	var doc advertiseDocument
	err := r.advertise.FindOne(ctx, bson.M{"productId": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find advertise item failed")
	}

	return toAdvertiseEntity(&doc), nil
}

// DeleteByProduct 按商品ID删除广告条目
// 条目不存在不算错误:下单流程对非广告商品也会调用
func (r *advertiseRepository) DeleteByProduct(ctx context.Context, productID string) error {
	_, err := r.advertise.DeleteMany(ctx, bson.M{"productId": productID})
	if err != nil {
		return apperrors.Wrap(err, "delete advertise item failed")
	}
	return nil
}
