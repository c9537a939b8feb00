package order

import (
	"time"
)

// Status 订单状态
// pending: 买家已下单未支付; paid: 支付完成(终态)
// 订单没有cancelled状态:买家侧取消即删除,管理员删除买家时一并清理
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Order 订单实体(账本记录)
// 设计说明:
// 1. ProductID是图书ID的十六进制字符串,全仓库统一该表示
// 2. 订单冗余存储下单时的书名与价格(快照),图书被改价/删除后历史订单不变
// 3. 一本二手书只有一件,一个商品至多有一条有效订单
type Order struct {
	ID            string
	ProductID     string
	BuyerEmail    string
	BuyerName     string
	Title         string // 下单时的书名快照
	Price         int64  // 下单时的价格快照(分)
	Phone         string
	Location      string // 面交地点
	Status        Status
	TransactionID string // 支付网关交易号,支付完成后填充
	CreatedAt     time.Time
	PaidAt        time.Time // 支付完成时间,零值表示未支付
}

// NewOrder 创建订单(工厂方法),初始状态pending
func NewOrder(productID, buyerEmail, buyerName, title string, price int64) *Order {
	return &Order{
		ProductID:  productID,
		BuyerEmail: buyerEmail,
		BuyerName:  buyerName,
		Title:      title,
		Price:      price,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
}

// WishItem 心愿单条目
// 支付完成时被提升为paid订单并删除(见CompletePayment流程)
type WishItem struct {
	ID         string
	ProductID  string
	BuyerEmail string
	Title      string
	Price      int64
	CreatedAt  time.Time
}

// NewWishItem 创建心愿单条目(工厂方法)
func NewWishItem(productID, buyerEmail, title string, price int64) *WishItem {
	return &WishItem{
		ProductID:  productID,
		BuyerEmail: buyerEmail,
		Title:      title,
		Price:      price,
		CreatedAt:  time.Now(),
	}
}

// Promote 将心愿单条目提升为已支付订单
func (w *WishItem) Promote() *Order {
	now := time.Now()
	return &Order{
		ProductID:  w.ProductID,
		BuyerEmail: w.BuyerEmail,
		Title:      w.Title,
		Price:      w.Price,
		Status:     StatusPaid,
		CreatedAt:  now,
		PaidAt:     now,
	}
}
