package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("product", cel.DynType),
		cel.Variable("customer", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是商品规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：product.category == "Books" / product.brand != "Brand A"
//   - 数值：product.price < 100.0 / product.probability >= 0.5
//   - 客户：product.season == customer.season / customer.location == "Mumbai"
//   - 逻辑：product.category == "Fashion" && product.price < 50.0
//   - 标签：label.filtered == null
//
// 示例：
//   - `product.season == customer.season` → 商品与客户的季节匹配
//   - `product.price <= customer.avg_order_value * 1.5` → 价格规则
//   - `product.geography == customer.location` → 地域匹配
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 表达式使用 CEL (Common Expression Language) 语法。
//
// 注意：对不存在的 key 直接取值会报错，用 `label.key != null` 检查存在性。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 准备输入数据
	input := e.buildInput()

	// 执行表达式
	out, _, err := prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	productMap := map[string]interface{}{}
	labelMap := map[string]interface{}{}
	customerMap := map[string]interface{}{}

	if e.item != nil {
		for k, lbl := range e.item.Labels {
			labelMap[k] = lbl.Value
		}
		if p := e.item.Product; p != nil {
			productMap = map[string]interface{}{
				"id":          p.ID,
				"category":    p.Category,
				"subcategory": p.Subcategory,
				"brand":       p.Brand,
				"price":       p.Price,
				"probability": p.Probability,
				"sentiment":   p.SentimentScore,
				"rating":      p.Rating,
				"holiday":     p.Holiday,
				"season":      p.Season,
				"geography":   p.Geography,
			}
		}
		productMap["similarity"] = e.item.Similarity
		productMap["score"] = e.item.Score
	}

	if e.rctx != nil && e.rctx.Customer != nil {
		c := e.rctx.Customer
		customerMap = map[string]interface{}{
			"id":              c.ID,
			"age":             c.Age,
			"gender":          c.Gender,
			"location":        c.Location,
			"segment":         c.Segment,
			"holiday":         c.Holiday,
			"season":          c.Season,
			"avg_order_value": c.AvgOrderValue,
		}
	}

	return map[string]interface{}{
		"product":  productMap,
		"customer": customerMap,
		"label":    labelMap,
	}
}
