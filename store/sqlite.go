package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/vector"
)

// SQLiteRepository 是 SQLite 实现的实体仓储，表结构对应摄取链路落库的
// customers / products 两张表，向量以逗号分隔文本列存储。
//
// 损坏向量的处理（不让单条脏数据拖垮整次推荐）：
//   - 商品向量解析失败：该行跳过，通过 OnCorrupt 上报
//   - 客户向量解析失败：返回 Embedding 为空的客户（下游降级为 NO_EMBEDDING），
//     同样通过 OnCorrupt 上报
type SQLiteRepository struct {
	db *sqlx.DB

	// OnCorrupt 在遇到损坏向量时回调（entity: "customer"/"product"）。
	// 为 nil 时静默跳过。
	OnCorrupt func(entity, id string, err error)
}

// NewSQLiteRepository 打开（或创建）dsn 指向的 SQLite 库。
// dsn 可以是文件路径或 ":memory:"。
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite 是单写者；单连接同时保证 ":memory:" 库不会随连接池新建连接而丢失
	db.SetMaxOpenConns(1)
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryFromDB 复用已有连接（测试/事务场景）。
func NewSQLiteRepositoryFromDB(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitSchema 建表（幂等）。
func (r *SQLiteRepository) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		age INTEGER,
		gender TEXT,
		location TEXT,
		browsing_history TEXT,
		purchase_history TEXT,
		customer_segment TEXT,
		avg_order_value REAL,
		holiday TEXT,
		season TEXT,
		embeddings TEXT
	);
	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		category TEXT,
		subcategory TEXT,
		price REAL,
		brand TEXT,
		average_rating_of_similar_products REAL,
		product_rating REAL,
		customer_review_sentiment_score REAL,
		holiday TEXT,
		season TEXT,
		geographical_location TEXT,
		similar_product_list TEXT,
		probability_of_recommendation REAL,
		embeddings TEXT
	);`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

type customerRow struct {
	CustomerID      string          `db:"customer_id"`
	Age             sql.NullInt64   `db:"age"`
	Gender          sql.NullString  `db:"gender"`
	Location        sql.NullString  `db:"location"`
	BrowsingHistory sql.NullString  `db:"browsing_history"`
	PurchaseHistory sql.NullString  `db:"purchase_history"`
	Segment         sql.NullString  `db:"customer_segment"`
	AvgOrderValue   sql.NullFloat64 `db:"avg_order_value"`
	Holiday         sql.NullString  `db:"holiday"`
	Season          sql.NullString  `db:"season"`
	Embeddings      sql.NullString  `db:"embeddings"`
}

type productRow struct {
	ProductID             string          `db:"product_id"`
	Category              sql.NullString  `db:"category"`
	Subcategory           sql.NullString  `db:"subcategory"`
	Price                 sql.NullFloat64 `db:"price"`
	Brand                 sql.NullString  `db:"brand"`
	SimilarProductsRating sql.NullFloat64 `db:"average_rating_of_similar_products"`
	Rating                sql.NullFloat64 `db:"product_rating"`
	SentimentScore        sql.NullFloat64 `db:"customer_review_sentiment_score"`
	Holiday               sql.NullString  `db:"holiday"`
	Season                sql.NullString  `db:"season"`
	Geography             sql.NullString  `db:"geographical_location"`
	SimilarProducts       sql.NullString  `db:"similar_product_list"`
	Probability           sql.NullFloat64 `db:"probability_of_recommendation"`
	Embeddings            sql.NullString  `db:"embeddings"`
}

func (r *SQLiteRepository) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	var row customerRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM customers WHERE customer_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}

	c := &core.Customer{
		ID:            row.CustomerID,
		Age:           int(row.Age.Int64),
		Gender:        row.Gender.String,
		Location:      row.Location.String,
		Segment:       row.Segment.String,
		Holiday:       row.Holiday.String,
		Season:        row.Season.String,
		AvgOrderValue: row.AvgOrderValue.Float64,
	}
	c.BrowsingHistory = decodeStringList(row.BrowsingHistory.String)
	c.PurchaseHistory = decodeStringList(row.PurchaseHistory.String)

	emb, err := vector.Decode(row.Embeddings.String)
	if err != nil {
		// 客户向量损坏：降级为"无向量"，不中断调用
		r.reportCorrupt("customer", id, err)
		return c, nil
	}
	c.Embedding = emb
	return c, nil
}

func (r *SQLiteRepository) ListScorableProducts(ctx context.Context) ([]*core.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM products
		 WHERE embeddings IS NOT NULL AND TRIM(embeddings) != ''
		 ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*core.Product, 0, len(rows))
	for _, row := range rows {
		emb, err := vector.Decode(row.Embeddings.String)
		if err != nil {
			// 商品向量损坏：跳过该行，不拖垮整次推荐
			r.reportCorrupt("product", row.ProductID, err)
			continue
		}
		if len(emb) == 0 {
			continue
		}

		price := row.Price.Float64
		if !row.Price.Valid {
			price = -1 // 价格缺失由过滤层 fail-closed 处理
		}

		out = append(out, &core.Product{
			ID:                    row.ProductID,
			Category:              row.Category.String,
			Subcategory:           row.Subcategory.String,
			Brand:                 row.Brand.String,
			Price:                 price,
			Probability:           row.Probability.Float64,
			SentimentScore:        row.SentimentScore.Float64,
			Rating:                row.Rating.Float64,
			SimilarProductsRating: row.SimilarProductsRating.Float64,
			Holiday:               row.Holiday.String,
			Season:                row.Season.String,
			Geography:             row.Geography.String,
			SimilarProducts:       decodeStringList(row.SimilarProducts.String),
			Embedding:             emb,
		})
	}
	return out, nil
}

func (r *SQLiteRepository) SaveCustomer(ctx context.Context, c *core.Customer) error {
	if c == nil || c.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: customer id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO customers (
			customer_id, age, gender, location, browsing_history,
			purchase_history, customer_segment, avg_order_value,
			holiday, season, embeddings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Age, c.Gender, c.Location,
		encodeStringList(c.BrowsingHistory), encodeStringList(c.PurchaseHistory),
		c.Segment, c.AvgOrderValue, c.Holiday, c.Season,
		vector.Encode(c.Embedding),
	)
	if err != nil {
		return fmt.Errorf("save customer %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) SaveProduct(ctx context.Context, p *core.Product) error {
	if p == nil || p.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: product id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO products (
			product_id, category, subcategory, price, brand,
			average_rating_of_similar_products, product_rating,
			customer_review_sentiment_score, holiday, season,
			geographical_location, similar_product_list,
			probability_of_recommendation, embeddings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Category, p.Subcategory, p.Price, p.Brand,
		p.SimilarProductsRating, p.Rating, p.SentimentScore,
		p.Holiday, p.Season, p.Geography,
		encodeStringList(p.SimilarProducts), p.Probability,
		vector.Encode(p.Embedding),
	)
	if err != nil {
		return fmt.Errorf("save product %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) reportCorrupt(entity, id string, err error) {
	if r.OnCorrupt != nil {
		r.OnCorrupt(entity, id, err)
	}
}

// 字符串列表列统一用 JSON 数组编码（替代原始数据里的 Python 字面量）。
func encodeStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStringList(text string) []string {
	if text == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil
	}
	return list
}

var (
	_ core.Repository       = (*SQLiteRepository)(nil)
	_ core.RepositoryWriter = (*SQLiteRepository)(nil)
)
