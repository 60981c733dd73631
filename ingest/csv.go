package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rushteam/shoprec/core"
)

// 原始数据集的 CSV 列名。
const (
	colCustomerID      = "Customer_ID"
	colAge             = "Age"
	colGender          = "Gender"
	colLocation        = "Location"
	colBrowsingHistory = "Browsing_History"
	colPurchaseHistory = "Purchase_History"
	colSegment         = "Customer_Segment"
	colAvgOrderValue   = "Avg_Order_Value"
	colHoliday         = "Holiday"
	colSeason          = "Season"

	colProductID       = "Product_ID"
	colCategory        = "Category"
	colSubcategory     = "Subcategory"
	colPrice           = "Price"
	colBrand           = "Brand"
	colSimilarRating   = "Average_Rating_of_Similar_Products"
	colProductRating   = "Product_Rating"
	colSentiment       = "Customer_Review_Sentiment_Score"
	colGeography       = "Geographical_Location"
	colSimilarProducts = "Similar_Product_List"
	colProbability     = "Probability_of_Recommendation"
)

// ReadCustomersCSV 读取客户数据集。
// 列表列解析失败时按空列表降级并通过 onBadField 上报（onBadField 可为 nil）。
func ReadCustomersCSV(r io.Reader, onBadField func(id, field string, err error)) ([]*core.Customer, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Customer, 0, len(rows))
	for _, row := range rows {
		get := fieldGetter(header, row)

		c := &core.Customer{
			ID:       get(colCustomerID),
			Gender:   get(colGender),
			Location: get(colLocation),
			Segment:  get(colSegment),
			Holiday:  get(colHoliday),
			Season:   get(colSeason),
		}
		if c.ID == "" {
			continue
		}
		c.Age, _ = strconv.Atoi(get(colAge))
		c.AvgOrderValue, _ = strconv.ParseFloat(get(colAvgOrderValue), 64)

		c.BrowsingHistory, err = ParseStringList(get(colBrowsingHistory))
		if err != nil {
			reportBadField(onBadField, c.ID, colBrowsingHistory, err)
			c.BrowsingHistory = nil
		}
		c.PurchaseHistory, err = ParseStringList(get(colPurchaseHistory))
		if err != nil {
			reportBadField(onBadField, c.ID, colPurchaseHistory, err)
			c.PurchaseHistory = nil
		}

		out = append(out, c)
	}
	return out, nil
}

// ReadProductsCSV 读取商品数据集。
// Similar_Product_List 解析失败时按空列表降级并通过 onBadField 上报。
func ReadProductsCSV(r io.Reader, onBadField func(id, field string, err error)) ([]*core.Product, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Product, 0, len(rows))
	for _, row := range rows {
		get := fieldGetter(header, row)

		p := &core.Product{
			ID:          get(colProductID),
			Category:    get(colCategory),
			Subcategory: get(colSubcategory),
			Brand:       get(colBrand),
			Holiday:     get(colHoliday),
			Season:      get(colSeason),
			Geography:   get(colGeography),
		}
		if p.ID == "" {
			continue
		}
		p.Price = parseFloatOr(get(colPrice), -1)
		p.Probability, _ = strconv.ParseFloat(get(colProbability), 64)
		p.SentimentScore, _ = strconv.ParseFloat(get(colSentiment), 64)
		p.Rating, _ = strconv.ParseFloat(get(colProductRating), 64)
		p.SimilarProductsRating, _ = strconv.ParseFloat(get(colSimilarRating), 64)

		// 原始数据里该列混用单双引号且带空格，先规整再解析
		raw := strings.ReplaceAll(strings.ReplaceAll(get(colSimilarProducts), " ", ""), "'", "\"")
		p.SimilarProducts, err = ParseStringList(raw)
		if err != nil {
			reportBadField(onBadField, p.ID, colSimilarProducts, err)
			p.SimilarProducts = nil
		}

		out = append(out, p)
	}
	return out, nil
}

func readAll(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput, "ingest: empty csv")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return records[1:], header, nil
}

func fieldGetter(header map[string]int, row []string) func(string) string {
	return func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func reportBadField(hook func(id, field string, err error), id, field string, err error) {
	if hook != nil {
		hook(id, field, err)
	}
}
