package models

import (
	"fmt"
	"strings"
)

// RiskLevels 风险等级有序域，从低到高，与用户风险偏好共用
var RiskLevels = []string{"低", "中低", "中", "中高", "高"}

// RiskLevelIndex 返回风险等级在有序域中的位置，不在域内返回-1
func RiskLevelIndex(level string) int {
	for i, l := range RiskLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// SalesScopeNationwide 全国销售范围标记
const SalesScopeNationwide = "全国"

// Product 养老保险产品，目录加载并归一化后不可变
type Product struct {
	ProductID        string   `db:"product_id" json:"product_id"`
	ProductName      string   `db:"product_name" json:"product_name"`
	InsuranceCompany string   `db:"insurance_company" json:"insurance_company"`
	MinAge           int      `db:"min_age" json:"min_age"`
	MaxAge           int      `db:"max_age" json:"max_age"`
	InsuranceType    string   `db:"insurance_type" json:"insurance_type"`
	PaymentType      string   `db:"payment_type" json:"payment_type"` // 趸交/期缴
	MinPremium       float64  `db:"min_premium" json:"min_premium"`   // 最低保费，万元
	RiskLevel        string   `db:"risk_level" json:"risk_level"`
	Coverage         string   `db:"coverage" json:"coverage"`
	FeatureKeywords  []string `json:"feature_keywords"`
	SalesChannel     string   `db:"sales_channel" json:"sales_channel"`
	SalesScope       string   `db:"sales_scope" json:"sales_scope"` // 地区列表（顿号分隔）或"全国"
}

// AgeRange 格式化投保年龄区间，如"18-65岁"
func (p *Product) AgeRange() string {
	return fmt.Sprintf("%d-%d岁", p.MinAge, p.MaxAge)
}

// AgeEligible 判断年龄是否在投保区间内（含边界）
func (p *Product) AgeEligible(age int) bool {
	return age >= p.MinAge && age <= p.MaxAge
}

// CoversLocation 判断销售范围是否覆盖指定地区，全国销售覆盖任意地区
func (p *Product) CoversLocation(location string) bool {
	if p.SalesScope == SalesScopeNationwide || location == SalesScopeNationwide {
		return true
	}
	for _, region := range strings.Split(p.SalesScope, "、") {
		if strings.TrimSpace(region) == location {
			return true
		}
	}
	return false
}

// SummaryStatistics 目录汇总统计，基于归一化后的产品集合计算
type SummaryStatistics struct {
	TotalProducts  int            `json:"total_products"`
	InsuranceTypes map[string]int `json:"insurance_types"`
	RiskLevels     map[string]int `json:"risk_levels"`
	Companies      map[string]int `json:"companies"`
	PremiumStats   PremiumStats   `json:"premium_stats"`
	DataSource     string         `json:"data_source"` // mysql/csv/demo
}

// PremiumStats 最低保费的分布统计，万元
type PremiumStats struct {
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}
