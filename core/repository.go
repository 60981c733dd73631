package core

import "context"

// Repository 是实体仓储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：打分逻辑不绑定任何具体存储技术
//   - 推荐链路对 Repository 只读，不产生副作用
//
// 实现：
//   - store.MemoryRepository（内存，测试/原型）
//   - store.SQLiteRepository（SQLite，对应摄取链路落库的表结构）
//   - store.CachedRepository（在任意 Repository 外加 Store 缓存）
type Repository interface {
	// GetCustomer 按 ID 读取客户。客户不存在时返回 NOT_FOUND 的 DomainError。
	// 客户存在但向量损坏时，返回 Embedding 为空的客户（降级为"无向量"），不报错。
	GetCustomer(ctx context.Context, id string) (*Customer, error)

	// ListScorableProducts 返回所有携带非空向量的商品。
	// 向量为空或损坏的商品不出现在结果中（它们无法打分，不是错误）。
	ListScorableProducts(ctx context.Context) ([]*Product, error)
}

// RepositoryWriter 是摄取链路使用的写接口，与只读的 Repository 分离。
type RepositoryWriter interface {
	// SaveCustomer 写入或覆盖一条客户记录。
	SaveCustomer(ctx context.Context, c *Customer) error

	// SaveProduct 写入或覆盖一条商品记录。
	SaveProduct(ctx context.Context, p *Product) error
}

// Repository 错误定义（使用统一的 DomainError）
var (
	// ErrCustomerNotFound 表示客户不存在
	ErrCustomerNotFound = NewDomainError(ModuleRecommend, ErrorCodeNotFound, "recommend: customer not found")

	// ErrNoCustomerEmbedding 表示客户存在但没有可用向量
	ErrNoCustomerEmbedding = NewDomainError(ModuleRecommend, ErrorCodeNoEmbedding, "recommend: customer has no usable embedding")
)
