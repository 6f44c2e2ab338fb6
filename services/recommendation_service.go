package services

import (
	"sort"

	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

// Recommend 对当前目录快照执行过滤、评分、排序和截断
// topN为0时返回空推荐列表，为负数时返回ErrInvalidTopN
// 对固定的目录快照和相同入参，输出完全确定
func Recommend(profile *models.UserProfile, topN int, filter *models.FilterCriteria) (*models.RecommendationSet, error) {
	if topN < 0 {
		return nil, utils.ErrInvalidTopN
	}

	// 评分前先按精确条件过滤，缩小评分集合
	candidates := make([]models.Product, 0)
	for _, p := range CatalogProducts() {
		if filter.Matches(&p) {
			candidates = append(candidates, p)
		}
	}

	// 逐个评分，年龄门槛不满足的产品被整体排除
	results := make([]*models.MatchResult, 0, len(candidates))
	for i := range candidates {
		if r := ScoreProduct(profile, &candidates[i]); r != nil {
			results = append(results, r)
		}
	}

	// 得分降序，平分时按最低保费升序，再按目录顺序（稳定排序保证）
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].Product.MinPremium < results[j].Product.MinPremium
	})

	if len(results) > topN {
		results = results[:topN]
	}

	logger.Debug("推荐计算完成",
		"candidates", len(candidates),
		"returned", len(results),
		"top_n", topN)

	return &models.RecommendationSet{
		Results:                results,
		TotalProductsEvaluated: len(candidates),
	}, nil
}
