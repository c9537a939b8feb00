package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// userDocument 用户持久化模型
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	Type      string             `bson:"type"`
	Verified  bool               `bson:"verified,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func toUserEntity(doc *userDocument) *user.User {
	return &user.User{
		ID:        doc.ID.Hex(),
		Email:     doc.Email,
		Name:      doc.Name,
		Type:      user.Type(doc.Type),
		Verified:  doc.Verified,
		CreatedAt: doc.CreatedAt,
	}
}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *Database) user.Repository {
	return &userRepository{users: db.Collection(collUsers)}
}

// Insert 插入用户,回填生成的ID
// 依赖email唯一索引,重复写入翻译为ErrEmailDuplicate
func (r *userRepository) Insert(ctx context.Context, u *user.User) error {
	doc := &userDocument{
		Email:     u.Email,
		Name:      u.Name,
		Type:      string(u.Type),
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}

	result, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "insert user failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

// FindByEmail 按邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find user failed")
	}

	return toUserEntity(&doc), nil
}

// FindByType 按角色列出用户
func (r *userRepository) FindByType(ctx context.Context, t user.Type) ([]*user.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{"type": string(t)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(err, "find users failed")
	}
	defer cursor.Close(ctx)

	users := make([]*user.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperrors.Wrap(err, "decode user failed")
		}
		users = append(users, toUserEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate users failed")
	}

	return users, nil
}

// SetVerified 将卖家标记为已认证(upsert保持历史行为)
func (r *userRepository) SetVerified(ctx context.Context, email string) error {
	_, err := r.users.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"verified": true}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.Wrap(err, "set user verified failed")
	}
	return nil
}

// DeleteByEmail 按邮箱删除用户
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	result, err := r.users.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return apperrors.Wrap(err, "delete user failed")
	}
	if result.DeletedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
