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

// bookDocument 图书持久化模型
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与BSON文档之间的转换
// 3. 字段名沿用历史数据的驼峰命名,存量文档无需迁移
type bookDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SellerEmail string             `bson:"sellerEmail"`
	SellerName  string             `bson:"sellerName,omitempty"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author,omitempty"`
	Category    string             `bson:"category"`
	CategoryID  int                `bson:"categoryId"`
	Price       int64              `bson:"price"`
	Condition   string             `bson:"condition,omitempty"`
	Location    string             `bson:"location,omitempty"`
	Picture     string             `bson:"picture,omitempty"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Verified    bool               `bson:"verified"`
	Advertise   bool               `bson:"advertise,omitempty"`
	PostedAt    time.Time          `bson:"postedAt"`
}

func toBookEntity(doc *bookDocument) *book.Book {
	return &book.Book{
		ID:          doc.ID.Hex(),
		SellerEmail: doc.SellerEmail,
		SellerName:  doc.SellerName,
		Title:       doc.Title,
		Author:      doc.Author,
		Category:    doc.Category,
		CategoryID:  doc.CategoryID,
		Price:       doc.Price,
		Condition:   doc.Condition,
		Location:    doc.Location,
		Picture:     doc.Picture,
		Description: doc.Description,
		Status:      book.Status(doc.Status),
		Verified:    doc.Verified,
		Advertise:   doc.Advertise,
		PostedAt:    doc.PostedAt,
	}
}

type bookRepository struct {
	books    *mongo.Collection
	counters *mongo.Collection
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *Database) book.Repository {
	return &bookRepository{
		books:    db.Collection(collBooks),
		counters: db.Collection(collCounters),
	}
}

// Insert 插入图书,回填生成的ID
func (r *bookRepository) Insert(ctx context.Context, b *book.Book) error {
	doc := &bookDocument{
		SellerEmail: b.SellerEmail,
		SellerName:  b.SellerName,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		CategoryID:  b.CategoryID,
		Price:       b.Price,
		Condition:   b.Condition,
		Location:    b.Location,
		Picture:     b.Picture,
		Description: b.Description,
		Status:      string(b.Status),
		Verified:    b.Verified,
		Advertise:   b.Advertise,
		PostedAt:    b.PostedAt,
	}

	result, err := r.books.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "insert book failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

// FindByID 按ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := oidFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument
	err = r.books.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find book failed")
	}

	return toBookEntity(&doc), nil
}

// FindAll 返回全部图书
func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return r.findMany(ctx, bson.M{})
}

// FindBySeller 返回卖家的全部图书
func (r *bookRepository) FindBySeller(ctx context.Context, email string) ([]*book.Book, error) {
	return r.findMany(ctx, bson.M{"sellerEmail": email})
}

// FindByCategoryID 返回指定类目的全部图书
func (r *bookRepository) FindByCategoryID(ctx context.Context, categoryID int) ([]*book.Book, error) {
	return r.findMany(ctx, bson.M{"categoryId": categoryID})
}

func (r *bookRepository) findMany(ctx context.Context, filter bson.M) ([]*book.Book, error) {
	// 稳定排序:类目分组依赖"首次出现顺序",以插入顺序(_id升序)为准
	cursor, err := r.books.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(err, "find books failed")
	}
	defer cursor.Close(ctx)

	books := make([]*book.Book, 0)
	for cursor.Next(ctx) {
		var doc bookDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode book failed")
		}
		books = append(books, toBookEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate books failed")
	}

	return books, nil
}

// FindOneByCategory 按类目名查任一图书
func (r *bookRepository) FindOneByCategory(ctx context.Context, category string) (*book.Book, error) {
	var doc bookDocument
	err := r.books.FindOne(ctx, bson.M{"category": category}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find book by category failed")
	}

	return toBookEntity(&doc), nil
}

// DistinctCategories 返回去重后的类目名列表
func (r *bookRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.books.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, apperrors.Wrap(err, "distinct categories failed")
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// NextCategoryID 原子分配下一个类目ID
// find-and-increment upsert:计数器文档不存在时从0开始$inc到1,
// 因此首个类目拿到1,之后按分配顺序递增
func (r *bookRepository) NextCategoryID(ctx context.Context) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "categoryId"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, apperrors.Wrap(err, "allocate category id failed")
	}

	return doc.Seq, nil
}

// UpdateStatus 条件状态流转
// 过滤条件包含前置状态,由单文档写入的原子性保证并发下仅一个写者成功
func (r *bookRepository) UpdateStatus(ctx context.Context, id string, from, to book.Status) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.books.UpdateOne(
		ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to)}},
	)
	if err != nil {
		return apperrors.Wrap(err, "update book status failed")
	}

	if result.MatchedCount == 0 {
		// 区分"图书不存在"与"状态已被并发流转"
		count, err := r.books.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return apperrors.Wrap(err, "check book existence failed")
		}
		if count == 0 {
			return book.ErrNotFound
		}
		return book.ErrNotAvailable
	}

	return nil
}

// ClearAdvertise 清除广告标记
func (r *bookRepository) ClearAdvertise(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.books.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$unset": bson.M{"advertise": 1}})
	if err != nil {
		return apperrors.Wrap(err, "clear advertise flag failed")
	}
	return nil
}

// SetAdvertise 打上广告标记
func (r *bookRepository) SetAdvertise(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.books.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"advertise": true}})
	if err != nil {
		return apperrors.Wrap(err, "set advertise flag failed")
	}
	if result.MatchedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Exists 检查图书是否存在
func (r *bookRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := oidFromHex(id)
	if err != nil {
		// 非法ID视为不存在:孤儿清理扫描时历史数据可能存有坏ID
		return false, nil
	}

	count, err := r.books.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperrors.Wrap(err, "check book existence failed")
	}
	return count > 0, nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	oid, err := oidFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.books.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "delete book failed")
	}
	if result.DeletedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

// DeleteBySeller 删除卖家的全部图书,返回被删图书的ID列表
func (r *bookRepository) DeleteBySeller(ctx context.Context, email string) ([]string, error) {
	// 先取ID再删除:调用方需要ID列表做广告位与订单的级联清理
	cursor, err := r.books.Find(
		ctx,
		bson.M{"sellerEmail": email},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "find seller books failed")
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode book id failed")
		}
		ids = append(ids, doc.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate seller books failed")
	}

	if _, err := r.books.DeleteMany(ctx, bson.M{"sellerEmail": email}); err != nil {
		return nil, apperrors.Wrap(err, "delete seller books failed")
	}

	return ids, nil
}
