package models

import "fmt"

// MatchResult 单个产品的评分结果，每次请求重新计算，不持久化
type MatchResult struct {
	Product    *Product
	MatchScore int      // 0-100
	Reasons    []string // 推荐理由，按因子权重从高到低排列
}

// RecommendationSet 排序截断后的推荐集合
type RecommendationSet struct {
	Results                []*MatchResult
	TotalProductsEvaluated int // 过滤后参与评分的产品数量
}

// FilterCriteria 评分前的目录精确匹配过滤条件，空字段表示不过滤
type FilterCriteria struct {
	InsuranceType    string `json:"insurance_type,omitempty"`
	RiskLevel        string `json:"risk_level,omitempty"`
	PaymentType      string `json:"payment_type,omitempty"`
	InsuranceCompany string `json:"insurance_company,omitempty"`
}

// Matches 判断产品是否满足全部过滤条件
func (f *FilterCriteria) Matches(p *Product) bool {
	if f == nil {
		return true
	}
	if f.InsuranceType != "" && p.InsuranceType != f.InsuranceType {
		return false
	}
	if f.RiskLevel != "" && p.RiskLevel != f.RiskLevel {
		return false
	}
	if f.PaymentType != "" && p.PaymentType != f.PaymentType {
		return false
	}
	if f.InsuranceCompany != "" && p.InsuranceCompany != f.InsuranceCompany {
		return false
	}
	return true
}

// Recommendation 输出给调用方的推荐条目
type Recommendation struct {
	ProductID             string   `json:"product_id"`
	ProductName           string   `json:"product_name"`
	InsuranceCompany      string   `json:"insurance_company"`
	MatchScore            int      `json:"match_score"`
	MatchPercentage       string   `json:"match_percentage"`
	AgeRange              string   `json:"age_range"`
	InsuranceType         string   `json:"insurance_type"`
	PaymentType           string   `json:"payment_type"`
	MinPremium            float64  `json:"min_premium"`
	RiskLevel             string   `json:"risk_level"`
	Coverage              string   `json:"coverage"`
	RecommendationReasons []string `json:"recommendation_reasons"`
	KeyFeatures           []string `json:"key_features"`
	SalesChannel          string   `json:"sales_channel"`
	SalesScope            string   `json:"sales_scope"`
}

// NewRecommendation 将评分结果转换为输出条目
func NewRecommendation(r *MatchResult) Recommendation {
	p := r.Product
	reasons := r.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	keywords := p.FeatureKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return Recommendation{
		ProductID:             p.ProductID,
		ProductName:           p.ProductName,
		InsuranceCompany:      p.InsuranceCompany,
		MatchScore:            r.MatchScore,
		MatchPercentage:       fmt.Sprintf("%d%%", r.MatchScore),
		AgeRange:              p.AgeRange(),
		InsuranceType:         p.InsuranceType,
		PaymentType:           p.PaymentType,
		MinPremium:            p.MinPremium,
		RiskLevel:             p.RiskLevel,
		Coverage:              p.Coverage,
		RecommendationReasons: reasons,
		KeyFeatures:           keywords,
		SalesChannel:          p.SalesChannel,
		SalesScope:            p.SalesScope,
	}
}

// PersonalizedAdvice 基于推荐结果和用户画像生成的个性化建议
type PersonalizedAdvice struct {
	GeneralAdvice              []string `json:"general_advice"`
	ProductTypeRecommendations []string `json:"product_type_recommendations"`
	NextSteps                  []string `json:"next_steps"`
}
