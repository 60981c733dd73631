// Package feast 提供 Feast Feature Store 的客户端与客户画像适配。
//
// 使用场景：客户画像（avg_order_value、location、season 等）不在关系库，
// 而是由在线特征服务提供时，用 ProfileSource 补齐 core.Customer。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 在线特征读取的客户端接口。
//
// Feast 是一个开源的 Feature Store，提供在线/离线特征存储与特征服务。
// 本包只依赖在线读取路径（GetOnlineFeatures）。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时推荐）
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["customer_profile:avg_order_value"]
	//   - EntityRows: 实体行，例如 [{"customer_id": "C2387"}]
	//
	// 返回的 FeatureVector 与 EntityRows 一一对应。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行（实体名 -> 值）
	EntityRows []map[string]interface{}

	// Project 项目名称（为空时使用客户端默认值）
	Project string
}

// FeatureVector 单个实体的特征向量，key 为特征名称
type FeatureVector struct {
	Values    map[string]interface{}
	EntityRow map[string]interface{}
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
	Auth     *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	Type  string // "static"
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
