package store

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// CachedRepository 在任意 Repository 外套一层 core.Store 缓存，
// 减少服务路径上的重复仓储读取（商品全量列表是每次推荐的大头）。
//
// 缓存语义：
//   - JSON 编码实体快照，TTL 过期后回源
//   - 缓存读写失败一律回源，不影响正确性
//   - NOT_FOUND 不缓存（负缓存留给上层按需实现）
type CachedRepository struct {
	inner core.Repository
	cache core.Store

	// TTLSeconds 缓存过期时间（秒），<=0 时默认 60
	TTLSeconds int
}

const (
	customerKeyPrefix = "repo:customer:"
	productsKey       = "repo:products:scorable"
)

func NewCachedRepository(inner core.Repository, cache core.Store) *CachedRepository {
	return &CachedRepository{inner: inner, cache: cache}
}

func (r *CachedRepository) ttl() int {
	if r.TTLSeconds > 0 {
		return r.TTLSeconds
	}
	return 60
}

func (r *CachedRepository) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	key := customerKeyPrefix + id
	if data, err := r.cache.Get(ctx, key); err == nil {
		var c core.Customer
		if json.Unmarshal(data, &c) == nil {
			return &c, nil
		}
	}

	c, err := r.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(c); err == nil {
		_ = r.cache.Set(ctx, key, data, r.ttl())
	}
	return c, nil
}

func (r *CachedRepository) ListScorableProducts(ctx context.Context) ([]*core.Product, error) {
	if data, err := r.cache.Get(ctx, productsKey); err == nil {
		var products []*core.Product
		if json.Unmarshal(data, &products) == nil {
			return products, nil
		}
	}

	products, err := r.inner.ListScorableProducts(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		_ = r.cache.Set(ctx, productsKey, data, r.ttl())
	}
	return products, nil
}

var _ core.Repository = (*CachedRepository)(nil)
