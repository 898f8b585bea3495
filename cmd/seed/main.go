package main

import (
	"context"
	"log"

	"github.com/example/gomall/internal/config"
	"github.com/example/gomall/internal/datamodels/product"
	"github.com/example/gomall/internal/repository/sqldb"
)

// 向空的商品表写入一批演示商品，方便本地联调
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sqldb.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx := context.Background()
	repo := sqldb.NewProductRepository(db)

	existing, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("products already seeded (%d rows), nothing to do", len(existing))
		return
	}

	seeds := []*product.Product{
		{Name: "Classic T-Shirt", Description: "100% cotton crew neck", Price: 19.99, Stock: 120, Category: "men", Status: product.StatusOnline},
		{Name: "Denim Jacket", Description: "Washed denim, regular fit", Price: 79.90, Stock: 40, Category: "men", Status: product.StatusOnline},
		{Name: "Summer Dress", Description: "Lightweight floral print", Price: 49.50, Stock: 60, Category: "women", Status: product.StatusOnline},
		{Name: "Leather Belt", Description: "Full-grain leather", Price: 24.00, Stock: 200, Category: "accessories", Status: product.StatusOnline},
		{Name: "Canvas Tote", Description: "Reusable shopping bag", Price: 12.50, Stock: 300, Category: "accessories", Status: product.StatusOnline},
	}
	for _, p := range seeds {
		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("seed product %q: %v", p.Name, err)
		}
		log.Printf("seeded product %d %q", p.ID, p.Name)
	}
}
