package repository

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Guo-Alice/pension-dify-system/db"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
)

// =====================
// MySQL产品目录
// =====================

// LoadProductsFromMySQL 从pension_products表加载产品目录
// 只在启动和重载时调用，之后目录常驻内存
func LoadProductsFromMySQL() ([]models.Product, error) {
	if db.DB == nil {
		return nil, fmt.Errorf("数据库未初始化")
	}

	rows, err := db.DB.Query(`
		SELECT product_id, product_name, insurance_company,
		       min_age, max_age, insurance_type, payment_type,
		       min_premium, risk_level, coverage,
		       feature_keywords, sales_channel, sales_scope
		FROM pension_products
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		var minAge, maxAge sql.NullInt64
		var minPremium sql.NullFloat64
		var insuranceType, paymentType, riskLevel, coverage sql.NullString
		var keywords, channel, scope sql.NullString

		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.InsuranceCompany,
			&minAge, &maxAge, &insuranceType, &paymentType,
			&minPremium, &riskLevel, &coverage,
			&keywords, &channel, &scope); err != nil {
			logger.Warn("跳过无法解析的产品行", "error", err)
			continue
		}

		p.MinAge = int(minAge.Int64)
		p.MaxAge = int(maxAge.Int64)
		p.MinPremium = minPremium.Float64
		p.InsuranceType = insuranceType.String
		p.PaymentType = paymentType.String
		p.RiskLevel = riskLevel.String
		p.Coverage = coverage.String
		p.FeatureKeywords = ParseKeywords(keywords.String)
		p.SalesChannel = channel.String
		p.SalesScope = scope.String

		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// =====================
// CSV产品目录
// =====================

// LoadProductsFromCSV 从CSV文件加载产品目录，首行为表头
// 数值字段解析失败时置零，由归一化阶段填充默认值；缺少product_id的行被丢弃
func LoadProductsFromCSV(path string) ([]models.Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 允许行字段数不一致，缺失列按空值处理

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV文件没有数据行: %s", path)
	}

	// 按表头定位列，列顺序不敏感
	index := make(map[string]int)
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	products := make([]models.Product, 0, len(records)-1)
	for _, row := range records[1:] {
		id := field(row, "product_id")
		if id == "" {
			continue
		}

		p := models.Product{
			ProductID:        id,
			ProductName:      field(row, "product_name"),
			InsuranceCompany: field(row, "insurance_company"),
			InsuranceType:    field(row, "insurance_type"),
			PaymentType:      field(row, "payment_type"),
			RiskLevel:        field(row, "risk_level"),
			Coverage:         field(row, "coverage"),
			FeatureKeywords:  ParseKeywords(field(row, "feature_keywords")),
			SalesChannel:     field(row, "sales_channel"),
			SalesScope:       field(row, "sales_scope"),
		}
		p.MinAge, _ = strconv.Atoi(field(row, "min_age"))
		p.MaxAge, _ = strconv.Atoi(field(row, "max_age"))
		p.MinPremium, _ = strconv.ParseFloat(field(row, "min_premium"), 64)

		products = append(products, p)
	}

	return products, nil
}

// ParseKeywords 解析特色关键词字段
// 兼容JSON数组（数据库存储格式）与顿号/竖线分隔的纯文本（CSV格式）
func ParseKeywords(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var keywords []string
		if err := json.Unmarshal([]byte(raw), &keywords); err == nil {
			return keywords
		}
	}

	separator := "、"
	if strings.Contains(raw, "|") {
		separator = "|"
	}

	keywords := make([]string, 0)
	for _, k := range strings.Split(raw, separator) {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
