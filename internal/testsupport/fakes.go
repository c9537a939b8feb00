// Package testsupport 提供各仓储接口的内存实现,供单元测试与
// 端到端测试使用
//
// 设计说明:
// 1. 行为与文档库实现对齐:条件更新带互斥锁模拟单文档原子性,
//    未命中返回与真实现相同的领域错误
// 2. 读写都做值拷贝,测试代码改返回值不会污染存储
package testsupport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
	"github.com/thestorykeeper/bookkeeper/internal/domain/order"
	"github.com/thestorykeeper/bookkeeper/internal/domain/payment"
	"github.com/thestorykeeper/bookkeeper/internal/domain/user"
	"github.com/thestorykeeper/bookkeeper/internal/infrastructure/event"
)

// idSeq 全局ID序列(生成24位十六进制字符串,与文档库ID同形)
var idSeq struct {
	mu sync.Mutex
	n  int
}

func nextID() string {
	idSeq.mu.Lock()
	defer idSeq.mu.Unlock()
	idSeq.n++
	return fmt.Sprintf("%024x", idSeq.n)
}

// =========================================
// 图书仓储
// =========================================

// BookRepo 内存版图书仓储
type BookRepo struct {
	mu      sync.Mutex
	books   map[string]*book.Book
	order   []string
	counter int
}

// NewBookRepo 创建内存图书仓储
func NewBookRepo() *BookRepo {
	return &BookRepo{books: make(map[string]*book.Book)}
}

func (r *BookRepo) Insert(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = nextID()
	clone := *b
	r.books[b.ID] = &clone
	r.order = append(r.order, b.ID)
	return nil
}

func (r *BookRepo) FindByID(ctx context.Context, id string) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *BookRepo) FindAll(ctx context.Context) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*book.Book, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.books[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookRepo) FindBySeller(ctx context.Context, email string) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*book.Book, 0)
	for _, id := range r.order {
		if r.books[id].SellerEmail == email {
			clone := *r.books[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *BookRepo) FindByCategoryID(ctx context.Context, categoryID int) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*book.Book, 0)
	for _, id := range r.order {
		if r.books[id].CategoryID == categoryID {
			clone := *r.books[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *BookRepo) FindOneByCategory(ctx context.Context, category string) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if r.books[id].Category == category {
			clone := *r.books[id]
			return &clone, nil
		}
	}
	return nil, book.ErrNotFound
}

func (r *BookRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range r.order {
		c := r.books[id].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *BookRepo) NextCategoryID(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *BookRepo) UpdateStatus(ctx context.Context, id string, from, to book.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return book.ErrNotFound
	}
	if b.Status != from {
		return book.ErrNotAvailable
	}
	b.Status = to
	return nil
}

func (r *BookRepo) ClearAdvertise(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.books[id]; ok {
		b.Advertise = false
	}
	return nil
}

func (r *BookRepo) SetAdvertise(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return book.ErrNotFound
	}
	b.Advertise = true
	return nil
}

func (r *BookRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.books[id]
	return ok, nil
}

func (r *BookRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return book.ErrNotFound
	}
	delete(r.books, id)
	r.order = remove(r.order, id)
	return nil
}

func (r *BookRepo) DeleteBySeller(ctx context.Context, email string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := make([]string, 0)
	remain := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.books[id].SellerEmail == email {
			deleted = append(deleted, id)
			delete(r.books, id)
		} else {
			remain = append(remain, id)
		}
	}
	r.order = remain
	return deleted, nil
}

// =========================================
// 广告位仓储
// =========================================

// AdvertiseRepo 内存版广告位仓储
type AdvertiseRepo struct {
	mu    sync.Mutex
	items map[string]*book.AdvertiseItem // key是productID
	order []string
}

// NewAdvertiseRepo 创建内存广告位仓储
func NewAdvertiseRepo() *AdvertiseRepo {
	return &AdvertiseRepo{items: make(map[string]*book.AdvertiseItem)}
}

func (r *AdvertiseRepo) Insert(ctx context.Context, item *book.AdvertiseItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = nextID()
	clone := *item
	r.items[item.ProductID] = &clone
	r.order = append(r.order, item.ProductID)
	return nil
}

func (r *AdvertiseRepo) FindAll(ctx context.Context) ([]*book.AdvertiseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*book.AdvertiseItem, 0, len(r.order))
	for _, pid := range r.order {
		clone := *r.items[pid]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *AdvertiseRepo) FindByProduct(ctx context.Context, productID string) (*book.AdvertiseItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[productID]
	if !ok {
		return nil, book.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *AdvertiseRepo) DeleteByProduct(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// 条目不存在不算错误,与真实现的DeleteMany语义一致
	delete(r.items, productID)
	r.order = remove(r.order, productID)
	return nil
}

// =========================================
// 订单与心愿单仓储
// =========================================

// OrderRepo 内存版订单/心愿单仓储
type OrderRepo struct {
	mu     sync.Mutex
	orders []*order.Order
	wishes []*order.WishItem

	// InsertOrderErr 非nil时InsertOrder直接返回该错误(测试saga补偿用)
	InsertOrderErr error
}

// NewOrderRepo 创建内存订单仓储
func NewOrderRepo() *OrderRepo {
	return &OrderRepo{}
}

func (r *OrderRepo) InsertOrder(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.InsertOrderErr != nil {
		return r.InsertOrderErr
	}
	o.ID = nextID()
	clone := *o
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *OrderRepo) FindOrderByProduct(ctx context.Context, productID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ProductID == productID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, order.ErrNotFound
}

func (r *OrderRepo) FindOrdersByBuyer(ctx context.Context, email string) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Order, 0)
	for _, o := range r.orders {
		if o.BuyerEmail == email {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *OrderRepo) FindAllOrders(ctx context.Context) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *OrderRepo) MarkOrderPaid(ctx context.Context, productID, transactionID string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ProductID != productID {
			continue
		}
		if o.Status != order.StatusPending {
			return order.ErrAlreadyPaid
		}
		o.Status = order.StatusPaid
		o.TransactionID = transactionID
		o.PaidAt = paidAt
		return nil
	}
	return order.ErrNotFound
}

func (r *OrderRepo) DeleteOrder(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ProductID == productID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return order.ErrNotFound
}

func (r *OrderRepo) DeleteOrdersByBuyer(ctx context.Context, email string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := make([]string, 0)
	remain := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if o.BuyerEmail != email {
			remain = append(remain, o)
			continue
		}
		if o.Status == order.StatusPending {
			pending = append(pending, o.ProductID)
		}
	}
	r.orders = remain
	return pending, nil
}

func (r *OrderRepo) DeleteUnpaidOrdersByProduct(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remain := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if o.ProductID == productID && o.Status == order.StatusPending {
			continue
		}
		remain = append(remain, o)
	}
	r.orders = remain
	return nil
}

func (r *OrderRepo) InsertWishItem(ctx context.Context, w *order.WishItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = nextID()
	clone := *w
	r.wishes = append(r.wishes, &clone)
	return nil
}

func (r *OrderRepo) FindWishItemByProduct(ctx context.Context, productID string) (*order.WishItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wishes {
		if w.ProductID == productID {
			clone := *w
			return &clone, nil
		}
	}
	return nil, order.ErrWishItemNotFound
}

func (r *OrderRepo) FindWishItemsByBuyer(ctx context.Context, email string) ([]*order.WishItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.WishItem, 0)
	for _, w := range r.wishes {
		if w.BuyerEmail == email {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *OrderRepo) DeleteWishItemByProduct(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.wishes {
		if w.ProductID == productID {
			r.wishes = append(r.wishes[:i], r.wishes[i+1:]...)
			return nil
		}
	}
	return order.ErrWishItemNotFound
}

// =========================================
// 用户仓储
// =========================================

// UserRepo 内存版用户仓储
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
	order []string
}

// NewUserRepo 创建内存用户仓储
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*user.User)}
}

func (r *UserRepo) Insert(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return user.ErrEmailDuplicate
	}
	u.ID = nextID()
	clone := *u
	r.users[u.Email] = &clone
	r.order = append(r.order, u.Email)
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepo) FindByType(ctx context.Context, t user.Type) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*user.User, 0)
	for _, email := range r.order {
		if r.users[email].Type == t {
			clone := *r.users[email]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *UserRepo) SetVerified(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		// upsert语义
		r.users[email] = &user.User{ID: nextID(), Email: email, Verified: true}
		r.order = append(r.order, email)
		return nil
	}
	u.Verified = true
	return nil
}

func (r *UserRepo) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, email)
	r.order = remove(r.order, email)
	return nil
}

// =========================================
// 支付流水仓储
// =========================================

// PaymentRepo 内存版支付流水仓储
type PaymentRepo struct {
	mu       sync.Mutex
	payments []*payment.Payment
}

// NewPaymentRepo 创建内存支付流水仓储
func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{}
}

func (r *PaymentRepo) Insert(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = nextID()
	clone := *p
	r.payments = append(r.payments, &clone)
	return nil
}

// Count 返回已落账凭证数
func (r *PaymentRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}

func (r *PaymentRepo) FindByProduct(ctx context.Context, productID string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ProductID == productID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, payment.ErrNotFound
}

// =========================================
// 事件记录器
// =========================================

// EventRecorder 记录发布事件的Publisher实现
type EventRecorder struct {
	mu               sync.Mutex
	BookPublished    []event.BookPublishedEvent
	OrderPlaced      []event.OrderPlacedEvent
	PaymentCompleted []event.PaymentCompletedEvent
}

// NewEventRecorder 创建事件记录器
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) PublishBookPublished(ctx context.Context, e event.BookPublishedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BookPublished = append(r.BookPublished, e)
}

func (r *EventRecorder) PublishOrderPlaced(ctx context.Context, e event.OrderPlacedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.OrderPlaced = append(r.OrderPlaced, e)
}

func (r *EventRecorder) PublishPaymentCompleted(ctx context.Context, e event.PaymentCompletedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PaymentCompleted = append(r.PaymentCompleted, e)
}

func (r *EventRecorder) Close() error {
	return nil
}

func remove(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
