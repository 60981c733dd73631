package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// MemoryRepository 是内存实现的实体仓储，用于测试/示例/原型。
// 同时实现 core.Repository（读）与 core.RepositoryWriter（写）。
type MemoryRepository struct {
	mu        sync.RWMutex
	customers map[string]*core.Customer
	products  map[string]*core.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		customers: make(map[string]*core.Customer),
		products:  make(map[string]*core.Product),
	}
}

func (r *MemoryRepository) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, core.ErrCustomerNotFound
	}
	return c, nil
}

func (r *MemoryRepository) ListScorableProducts(ctx context.Context) ([]*core.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.HasEmbedding() {
			continue
		}
		out = append(out, p)
	}
	// map 遍历无序，按 ID 排序保证结果可复现
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) SaveCustomer(ctx context.Context, c *core.Customer) error {
	if c == nil || c.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: customer id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = c
	return nil
}

func (r *MemoryRepository) SaveProduct(ctx context.Context, p *core.Product) error {
	if p == nil || p.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: product id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

var (
	_ core.Repository       = (*MemoryRepository)(nil)
	_ core.RepositoryWriter = (*MemoryRepository)(nil)
)
