package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
)

// oidFromHex 十六进制字符串 → 文档原生ID
// 全仓库统一使用十六进制字符串表示商品ID,只在Books集合的
// 边界转换为ObjectID(历史实现两种表示混用,此处收敛)
func oidFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, book.ErrInvalidID
	}
	return oid, nil
}

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
