package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/gomall/internal/datamodels/product"
)

// ProductService 商品目录查询与后台维护
type ProductService struct {
	repo product.Repository
}

// NewProductService 创建商品服务
func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// List 查询在售商品，category 非空时按分类过滤
func (s *ProductService) List(ctx context.Context, category string) ([]*product.Product, error) {
	if category != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.ListOnline(ctx)
}

// GetByID 查询单个商品
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create 新建商品（后台）
func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

// Update 更新商品（后台）
func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	return s.repo.Update(ctx, p)
}
