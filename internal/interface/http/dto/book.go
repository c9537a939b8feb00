package dto

import (
	"time"

	"github.com/thestorykeeper/bookkeeper/internal/domain/book"
)

// PublishBookRequest 上架请求体
type PublishBookRequest struct {
	SellerEmail string `json:"sellerEmail" binding:"required,email"`
	SellerName  string `json:"sellerName"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	Category    string `json:"category" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	Picture     string `json:"picture"`
	Description string `json:"description"`
}

// BookResponse 图书响应体
// 字段名沿用历史API(文档库原生命名),存量前端无需改动
type BookResponse struct {
	ID          string    `json:"_id"`
	SellerEmail string    `json:"sellerEmail"`
	SellerName  string    `json:"sellerName,omitempty"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Category    string    `json:"category"`
	CategoryID  int       `json:"categoryId"`
	Price       int64     `json:"price"`
	Condition   string    `json:"condition,omitempty"`
	Location    string    `json:"location,omitempty"`
	Picture     string    `json:"picture,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Verified    bool      `json:"verified"`
	Advertise   bool      `json:"advertise,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
}

// NewBookResponse 从领域实体构建响应
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
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
}

// NewBookResponses 批量构建
func NewBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}

// NewBookGroups 分组批量构建(首页/全量分组查询)
func NewBookGroups(groups [][]*book.Book) [][]*BookResponse {
	out := make([][]*BookResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, NewBookResponses(g))
	}
	return out
}

// AdvertiseRequest 投放广告请求体
type AdvertiseRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AdvertiseItemResponse 广告条目响应体
type AdvertiseItemResponse struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	Title     string    `json:"title"`
	Picture   string    `json:"picture,omitempty"`
	Price     int64     `json:"price"`
	Advertise bool      `json:"advertise"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAdvertiseItemResponse 从领域实体构建响应
func NewAdvertiseItemResponse(item *book.AdvertiseItem) *AdvertiseItemResponse {
	return &AdvertiseItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Title:     item.Title,
		Picture:   item.Picture,
		Price:     item.Price,
		Advertise: item.Advertise,
		CreatedAt: item.CreatedAt,
	}
}

// NewAdvertiseItemResponses 批量构建
func NewAdvertiseItemResponses(items []*book.AdvertiseItem) []*AdvertiseItemResponse {
	out := make([]*AdvertiseItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewAdvertiseItemResponse(item))
	}
	return out
}
