package book

import (
	"time"
)

// Status 图书生命周期状态
// 状态机: available → pending → sold,以及pending → available(买家删除时回退)
// 文档库中以字符串存储,与历史数据保持兼容
type Status string

const (
	StatusAvailable Status = "available" // 在售
	StatusPending   Status = "pending"   // 已被下单,等待支付
	StatusSold      Status = "sold"      // 已售出(终态)
)

// Valid 判断是否为合法状态值
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Book 二手书实体(聚合根)
// 设计说明:
// 1. ID是文档库原生ID的十六进制字符串形式,全仓库统一使用该表示,
//    只在持久化层的边界转换为原生ID(历史实现两种表示混用,此处收敛)
// 2. CategoryID由类目分配器计算,同名类目的所有图书共享同一个ID
// 3. Verified在上架时从卖家资料复制(展示"认证卖家"标记用)
// 4. Advertise为广告位标记,下单后无条件清除
type Book struct {
	ID          string
	SellerEmail string
	SellerName  string
	Title       string
	Author      string
	Category    string
	CategoryID  int
	Price       int64 // 单位:分
	Condition   string
	Location    string
	Picture     string
	Description string
	Status      Status
	Verified    bool
	Advertise   bool
	PostedAt    time.Time
}

// New 创建新图书(工厂方法)
// 初始状态为available,CategoryID与Verified由上架流程填充
func New(sellerEmail, sellerName, title, author, category string, price int64) *Book {
	return &Book{
		SellerEmail: sellerEmail,
		SellerName:  sellerName,
		Title:       title,
		Author:      author,
		Category:    category,
		Price:       price,
		Status:      StatusAvailable,
		PostedAt:    time.Now(),
	}
}

// IsOwnedBy 检查图书是否由指定卖家发布
func (b *Book) IsOwnedBy(email string) bool {
	return b.SellerEmail == email
}

// Orderable 是否可被下单
func (b *Book) Orderable() bool {
	return b.Status == StatusAvailable
}

// AdvertiseItem 广告位条目
// 设计说明:这是已投放广告图书的投影,不是独立聚合,
// 图书被下单或删除时广告条目一并清除
type AdvertiseItem struct {
	ID        string
	ProductID string // 对应Book.ID(十六进制字符串)
	Title     string
	Picture   string
	Price     int64
	Advertise bool // 恒为true,保留字段以兼容历史数据
	CreatedAt time.Time
}
