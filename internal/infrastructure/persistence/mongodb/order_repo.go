package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// orderDocument 订单持久化模型
// productId存为字符串而非ObjectID:订单是对商品的引用台账,
// 商品被删除后订单仍可独立解读
type orderDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProductID     string             `bson:"productId"`
	BuyerEmail    string             `bson:"email"`
	BuyerName     string             `bson:"buyerName,omitempty"`
	Title         string             `bson:"title"`
	Price         int64              `bson:"price"`
	Phone         string             `bson:"phone,omitempty"`
	Location      string             `bson:"location,omitempty"`
	Status        string             `bson:"status"`
	TransactionID string             `bson:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	PaidAt        time.Time          `bson:"paidAt,omitempty"`
}

type wishItemDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ProductID  string             `bson:"productId"`
	BuyerEmail string             `bson:"email"`
	Title      string             `bson:"title"`
	Price      int64              `bson:"price"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func toOrderEntity(doc *orderDocument) *order.Order {
	return &order.Order{
		ID:            doc.ID.Hex(),
		ProductID:     doc.ProductID,
		BuyerEmail:    doc.BuyerEmail,
		BuyerName:     doc.BuyerName,
		Title:         doc.Title,
		Price:         doc.Price,
		Phone:         doc.Phone,
		Location:      doc.Location,
		Status:        order.Status(doc.Status),
		TransactionID: doc.TransactionID,
		CreatedAt:     doc.CreatedAt,
		PaidAt:        doc.PaidAt,
	}
}

func toWishItemEntity(doc *wishItemDocument) *order.WishItem {
	return &order.WishItem{
		ID:         doc.ID.Hex(),
		ProductID:  doc.ProductID,
		BuyerEmail: doc.BuyerEmail,
		Title:      doc.Title,
		Price:      doc.Price,
		CreatedAt:  doc.CreatedAt,
	}
}

type orderRepository struct {
	orders   *mongo.Collection
	wishList *mongo.Collection
}

// NewOrderRepository 创建订单/心愿单仓储
func NewOrderRepository(db *Database) order.Repository {
	return &orderRepository{
		orders:   db.Collection(collOrders),
		wishList: db.Collection(collWishList),
	}
}

// InsertOrder 写入订单,回填生成的ID
func (r *orderRepository) InsertOrder(ctx context.Context, o *order.Order) error {
	doc := &orderDocument{
		ProductID:     o.ProductID,
		BuyerEmail:    o.BuyerEmail,
		BuyerName:     o.BuyerName,
		Title:         o.Title,
		Price:         o.Price,
		Phone:         o.Phone,
		Location:      o.Location,
		Status:        string(o.Status),
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
	}

	result, err := r.orders.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "insert order failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

// FindOrderByProduct 按商品查订单
func (r *orderRepository) FindOrderByProduct(ctx context.Context, productID string) (*order.Order, error) {
	var doc orderDocument
	err := r.orders.FindOne(ctx, bson.M{"productId": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find order failed")
	}

	return toOrderEntity(&doc), nil
}

// FindOrdersByBuyer 返回买家的全部订单
func (r *orderRepository) FindOrdersByBuyer(ctx context.Context, email string) ([]*order.Order, error) {
	return r.findOrders(ctx, bson.M{"email": email})
}

// FindAllOrders 返回全部订单
func (r *orderRepository) FindAllOrders(ctx context.Context) ([]*order.Order, error) {
	return r.findOrders(ctx, bson.M{})
}

func (r *orderRepository) findOrders(ctx context.Context, filter bson.M) ([]*order.Order, error) {
	cursor, err := r.orders.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(err, "find orders failed")
	}
	defer cursor.Close(ctx)

	orders := make([]*order.Order, 0)
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode order failed")
		}
		orders = append(orders, toOrderEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate orders failed")
	}

	return orders, nil
}

// MarkOrderPaid 条件标记订单已支付
// 过滤条件限定pending状态,重复支付回调只会命中一次
func (r *orderRepository) MarkOrderPaid(ctx context.Context, productID, transactionID string, paidAt time.Time) error {
	result, err := r.orders.UpdateOne(
		ctx,
		bson.M{"productId": productID, "status": string(order.StatusPending)},
		bson.M{"$set": bson.M{
			"status":        string(order.StatusPaid),
			"transactionId": transactionID,
			"paidAt":        paidAt,
		}},
	)
	if err != nil {
		return apperrors.Wrap(err, "mark order paid failed")
	}

	if result.MatchedCount == 0 {
		count, err := r.orders.CountDocuments(ctx, bson.M{"productId": productID})
		if err != nil {
			return apperrors.Wrap(err, "check order existence failed")
		}
		if count == 0 {
			return order.ErrNotFound
		}
		return order.ErrAlreadyPaid
	}

	return nil
}

// DeleteOrder 按商品删除订单
func (r *orderRepository) DeleteOrder(ctx context.Context, productID string) error {
	result, err := r.orders.DeleteOne(ctx, bson.M{"productId": productID})
	if err != nil {
		return apperrors.Wrap(err, "delete order failed")
	}
	if result.DeletedCount == 0 {
		return order.ErrNotFound
	}
	return nil
}

// DeleteOrdersByBuyer 删除买家的全部订单,返回其中未支付订单引用的商品ID
func (r *orderRepository) DeleteOrdersByBuyer(ctx context.Context, email string) ([]string, error) {
	// 未支付订单删除后商品需要回滚为在售,先收集其引用的商品ID
	cursor, err := r.orders.Find(
		ctx,
		bson.M{"email": email, "status": string(order.StatusPending)},
		options.Find().SetProjection(bson.M{"productId": 1}),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "find buyer orders failed")
	}
	defer cursor.Close(ctx)

	productIDs := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ProductID string `bson:"productId"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode order failed")
		}
		productIDs = append(productIDs, doc.ProductID)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate buyer orders failed")
	}

	if _, err := r.orders.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return nil, apperrors.Wrap(err, "delete buyer orders failed")
	}

	return productIDs, nil
}

// DeleteUnpaidOrdersByProduct 删除商品的未支付订单
func (r *orderRepository) DeleteUnpaidOrdersByProduct(ctx context.Context, productID string) error {
	_, err := r.orders.DeleteMany(ctx, bson.M{
		"productId": productID,
		"status":    string(order.StatusPending),
	})
	if err != nil {
		return apperrors.Wrap(err, "delete unpaid orders failed")
	}
	return nil
}

// InsertWishItem 写入心愿单条目,回填生成的ID
func (r *orderRepository) InsertWishItem(ctx context.Context, w *order.WishItem) error {
	doc := &wishItemDocument{
		ProductID:  w.ProductID,
		BuyerEmail: w.BuyerEmail,
		Title:      w.Title,
		Price:      w.Price,
		CreatedAt:  w.CreatedAt,
	}

	result, err := r.wishList.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "insert wish item failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		w.ID = oid.Hex()
	}
	return nil
}

// FindWishItemByProduct 按商品查心愿单条目
func (r *orderRepository) FindWishItemByProduct(ctx context.Context, productID string) (*order.WishItem, error) {
	var doc wishItemDocument
	err := r.wishList.FindOne(ctx, bson.M{"productId": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrWishItemNotFound
		}
		return nil, apperrors.Wrap(err, "find wish item failed")
	}

	return toWishItemEntity(&doc), nil
}

// FindWishItemsByBuyer 返回买家的全部心愿单条目
func (r *orderRepository) FindWishItemsByBuyer(ctx context.Context, email string) ([]*order.WishItem, error) {
	cursor, err := r.wishList.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(err, "find wish items failed")
	}
	defer cursor.Close(ctx)

	items := make([]*order.WishItem, 0)
	for cursor.Next(ctx) {
		var doc wishItemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode wish item failed")
		}
		items = append(items, toWishItemEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate wish items failed")
	}

	return items, nil
}

// DeleteWishItemByProduct 按商品删除心愿单条目
func (r *orderRepository) DeleteWishItemByProduct(ctx context.Context, productID string) error {
	result, err := r.wishList.DeleteOne(ctx, bson.M{"productId": productID})
	if err != nil {
		return apperrors.Wrap(err, "delete wish item failed")
	}
	if result.DeletedCount == 0 {
		return order.ErrWishItemNotFound
	}
	return nil
}
