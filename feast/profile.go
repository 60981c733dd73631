package feast

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/conv"
)

// 客户画像在特征服务里的默认特征名。
const (
	FeatureAvgOrderValue = "customer_profile:avg_order_value"
	FeatureLocation      = "customer_profile:location"
	FeatureGender        = "customer_profile:gender"
	FeatureSeason        = "customer_profile:season"
)

// ProfileSource 从 Feast 在线特征服务读取客户画像字段，
// 用于补齐关系库中缺失的画像列（例如画像由独立特征平台维护的部署形态）。
type ProfileSource struct {
	Client Client

	// EntityName 实体名，默认 "customer_id"
	EntityName string

	// Features 拉取的特征列表，默认为 customer_profile 四个画像字段
	Features []string
}

// NewProfileSource 创建一个客户画像特征源。
func NewProfileSource(client Client) *ProfileSource {
	return &ProfileSource{
		Client:     client,
		EntityName: "customer_id",
		Features: []string{
			FeatureAvgOrderValue,
			FeatureLocation,
			FeatureGender,
			FeatureSeason,
		},
	}
}

// Enrich 用在线特征补齐客户画像字段。
// 只覆盖零值字段，已有值（来自关系库）优先保留。
// 特征服务不可用时原样返回错误，由调用方决定降级策略。
func (s *ProfileSource) Enrich(ctx context.Context, c *core.Customer) error {
	if s.Client == nil || c == nil || c.ID == "" {
		return nil
	}

	entityName := s.EntityName
	if entityName == "" {
		entityName = "customer_id"
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: []map[string]interface{}{{entityName: c.ID}},
	})
	if err != nil {
		return err
	}
	if len(resp.FeatureVectors) == 0 {
		return nil
	}

	values := resp.FeatureVectors[0].Values
	if c.AvgOrderValue == 0 {
		if f, ok := conv.ToFloat64(values[FeatureAvgOrderValue]); ok {
			c.AvgOrderValue = f
		}
	}
	if c.Location == "" {
		if v, ok := conv.ToString(values[FeatureLocation]); ok {
			c.Location = v
		}
	}
	if c.Gender == "" {
		if v, ok := conv.ToString(values[FeatureGender]); ok {
			c.Gender = v
		}
	}
	if c.Season == "" {
		if v, ok := conv.ToString(values[FeatureSeason]); ok {
			c.Season = v
		}
	}
	return nil
}
