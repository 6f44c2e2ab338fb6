package models

// RecommendResponse 推荐接口响应，字段结构与Dify工作流约定保持一致
type RecommendResponse struct {
	Success                bool                `json:"success" example:"true"`
	Timestamp              string              `json:"timestamp" example:"2026-01-02T15:04:05+08:00"`
	APIVersion             string              `json:"api_version" example:"3.0"`
	UserID                 string              `json:"user_id" example:"a1b2c3d4e5f6"`
	UserProfile            *UserProfile        `json:"user_profile"`
	TotalProductsEvaluated int                 `json:"total_products_evaluated" example:"42"`
	RecommendationCount    int                 `json:"recommendation_count" example:"5"`
	Recommendations        []Recommendation    `json:"recommendations"`
	PersonalizedAdvice     *PersonalizedAdvice `json:"personalized_advice"`
}

// ProductDetailResponse 产品详情响应
type ProductDetailResponse struct {
	Success bool     `json:"success" example:"true"`
	Product *Product `json:"product"`
}

// SearchResponse 产品搜索响应
type SearchResponse struct {
	Success bool      `json:"success" example:"true"`
	Keyword string    `json:"keyword" example:"年金"`
	Count   int       `json:"count" example:"3"`
	Results []Product `json:"results"`
}

// CompaniesResponse 保险公司列表响应
type CompaniesResponse struct {
	Success   bool     `json:"success" example:"true"`
	Companies []string `json:"companies"`
	Count     int      `json:"count" example:"8"`
}

// StatsResponse 系统统计响应
type StatsResponse struct {
	Success    bool               `json:"success" example:"true"`
	Statistics *SummaryStatistics `json:"statistics"`
	Timestamp  string             `json:"timestamp" example:"2026-01-02T15:04:05+08:00"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status            string `json:"status" example:"healthy"`
	Timestamp         string `json:"timestamp" example:"2026-01-02T15:04:05+08:00"`
	SystemInitialized bool   `json:"system_initialized" example:"true"`
	DataLoaded        bool   `json:"data_loaded" example:"true"`
	DataSource        string `json:"data_source" example:"csv"`
	ProductCount      int    `json:"product_count" example:"42"`
	ProfileCount      int    `json:"profile_count" example:"7"`
}

// ReloadResponse 目录重载响应
type ReloadResponse struct {
	Success      bool   `json:"success" example:"true"`
	ProductCount int    `json:"product_count" example:"42"`
	DataSource   string `json:"data_source" example:"mysql"`
	Timestamp    string `json:"timestamp" example:"2026-01-02T15:04:05+08:00"`
}
