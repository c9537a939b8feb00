package event

import (
	"context"
	"log"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/config"
	"github.com/thestorykeeper/bookkeeper/pkg/mq"
)

// 路由键
const (
	RoutingKeyBookPublished    = "book.published"
	RoutingKeyOrderPlaced      = "order.placed"
	RoutingKeyPaymentCompleted = "payment.completed"
)

// BookPublishedEvent 新书上架事件
type BookPublishedEvent struct {
	ProductID   string    `json:"product_id"`
	SellerEmail string    `json:"seller_email"`
	Category    string    `json:"category"`
	CategoryID  int       `json:"category_id"`
	Price       int64     `json:"price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderPlacedEvent 下单事件
type OrderPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	BuyerEmail string    `json:"buyer_email"`
	Price      int64     `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentCompletedEvent 支付完成事件
type PaymentCompletedEvent struct {
	ProductID     string    `json:"product_id"`
	BuyerEmail    string    `json:"buyer_email"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher 领域事件发布者
// 设计说明:
// 1. 事件发布是业务主链路之外的通知,失败只记日志不回传错误
// 2. MQ未启用时退化为空实现,调用方无需判空
type Publisher interface {
	PublishBookPublished(ctx context.Context, e BookPublishedEvent)
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent)
	PublishPaymentCompleted(ctx context.Context, e PaymentCompletedEvent)
	Close() error
}

type amqpPublisher struct {
	publisher *mq.Publisher
}

type nopPublisher struct{}

// NewPublisher 创建事件发布者,MQ未启用时返回空实现
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if !cfg.MQ.Enabled {
		return nopPublisher{}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return &amqpPublisher{publisher: p}, nil
}

func (p *amqpPublisher) PublishBookPublished(ctx context.Context, e BookPublishedEvent) {
	p.publish(ctx, RoutingKeyBookPublished, e)
}

func (p *amqpPublisher) PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) {
	p.publish(ctx, RoutingKeyOrderPlaced, e)
}

func (p *amqpPublisher) PublishPaymentCompleted(ctx context.Context, e PaymentCompletedEvent) {
	p.publish(ctx, RoutingKeyPaymentCompleted, e)
}

func (p *amqpPublisher) publish(ctx context.Context, routingKey string, message interface{}) {
	if err := p.publisher.Publish(ctx, routingKey, message); err != nil {
		log.Printf("发布事件失败: routingKey=%s, err=%v", routingKey, err)
	}
}

func (p *amqpPublisher) Close() error {
	return p.publisher.Close()
}

func (nopPublisher) PublishBookPublished(context.Context, BookPublishedEvent)       {}
func (nopPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent)           {}
func (nopPublisher) PublishPaymentCompleted(context.Context, PaymentCompletedEvent) {}
func (nopPublisher) Close() error                                                   { return nil }
