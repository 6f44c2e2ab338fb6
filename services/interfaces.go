package services

import (
	"time"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/models"
)

// CatalogService 产品目录服务接口
type CatalogService interface {
	// 加载目录并原子替换当前快照
	LoadCatalog(cfg *config.Config)

	// 按产品ID精确查找
	GetProduct(productID string) (*models.Product, error)

	// 关键词搜索
	SearchProducts(keyword string, limit int) []models.Product

	// 汇总统计与公司列表
	CatalogStatistics() *models.SummaryStatistics
	AllCompanies() []string

	// 目录状态
	CatalogLoaded() bool
	CatalogSource() string
	CatalogLoadedAt() time.Time
}

// RecommenderService 推荐服务接口
type RecommenderService interface {
	// 过滤、评分、排序、截断
	Recommend(profile *models.UserProfile, topN int, filter *models.FilterCriteria) (*models.RecommendationSet, error)

	// 基于推荐结果生成个性化建议
	GeneratePersonalizedAdvice(profile *models.UserProfile, set *models.RecommendationSet) *models.PersonalizedAdvice
}

// ProfileRegistry 用户画像缓存接口
type ProfileRegistry interface {
	// 保存画像并返回生成的用户ID
	SaveUserProfile(cfg *config.Config, profile *models.UserProfile) string

	// 按用户ID查找画像
	GetUserProfile(userID string) (*models.UserProfile, error)

	// 当前缓存的画像数量
	ProfileCount() int
}
