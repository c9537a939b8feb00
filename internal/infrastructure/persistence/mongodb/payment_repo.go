package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thestorykeeper/bookkeeper/internal/domain/payment"
	apperrors "github.com/thestorykeeper/bookkeeper/pkg/errors"
)

// paymentDocument 支付凭证持久化模型(仅追加)
type paymentDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	PaymentIntentID string             `bson:"paymentIntentId,omitempty"`
	TransactionID   string             `bson:"transactionId"`
	ProductID       string             `bson:"productId"`
	BuyerEmail      string             `bson:"email"`
	Amount          int64              `bson:"amount"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func toPaymentEntity(doc *paymentDocument) *payment.Payment {
	return &payment.Payment{
		ID:              doc.ID.Hex(),
		PaymentIntentID: doc.PaymentIntentID,
		TransactionID:   doc.TransactionID,
		ProductID:       doc.ProductID,
		BuyerEmail:      doc.BuyerEmail,
		Amount:          doc.Amount,
		CreatedAt:       doc.CreatedAt,
	}
}

type paymentRepository struct {
	payments *mongo.Collection
}

// NewPaymentRepository 创建支付凭证仓储
func NewPaymentRepository(db *Database) payment.Repository {
	return &paymentRepository{payments: db.Collection(collPayments)}
}

// Insert 写入支付凭证,回填生成的ID
func (r *paymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	doc := &paymentDocument{
		PaymentIntentID: p.PaymentIntentID,
		TransactionID:   p.TransactionID,
		ProductID:       p.ProductID,
		BuyerEmail:      p.BuyerEmail,
		Amount:          p.Amount,
		CreatedAt:       p.CreatedAt,
	}

	result, err := r.payments.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Wrap(err, "insert payment failed")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

// FindByProduct 按商品ID查找支付凭证
func (r *paymentRepository) FindByProduct(ctx context.Context, productID string) (*payment.Payment, error) {
	var doc paymentDocument
	err := r.payments.FindOne(ctx, bson.M{"productId": productID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, payment.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "find payment failed")
	}

	return toPaymentEntity(&doc), nil
}
