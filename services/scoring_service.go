package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/Guo-Alice/pension-dify-system/models"
)

// factorResult 单个因子的评估结果
type factorResult struct {
	contribution float64
	reason       string // 因子贡献达到可见阈值时输出的推荐理由
	excluded     bool   // 硬性门槛不满足，产品整体排除，不参与排名
}

// scoringFactor 命名加权评分因子，各因子独立求值
type scoringFactor struct {
	name     string
	weight   float64
	evaluate func(profile *models.UserProfile, product *models.Product, weight float64) factorResult
}

// scoringFactors 评分模型：权重合计100，按权重从高到低排列
// 推荐理由按此顺序输出
var scoringFactors = []scoringFactor{
	{name: "age_eligibility", weight: 25, evaluate: evaluateAgeEligibility},
	{name: "risk_alignment", weight: 25, evaluate: evaluateRiskAlignment},
	{name: "affordability", weight: 25, evaluate: evaluateAffordability},
	{name: "regional_fit", weight: 15, evaluate: evaluateRegionalFit},
	{name: "horizon_fit", weight: 10, evaluate: evaluateHorizonFit},
}

// reasonVisibilityThreshold 因子贡献达到权重的该比例时才输出推荐理由
const reasonVisibilityThreshold = 0.5

// ScoreProduct 计算单个产品与用户画像的匹配得分和推荐理由
// 年龄门槛不满足时返回nil，产品不出现在任何排名中
// 单个因子的异常只影响该因子的贡献，不会中断整个评分
func ScoreProduct(profile *models.UserProfile, product *models.Product) *models.MatchResult {
	total := 0.0
	reasons := make([]string, 0, len(scoringFactors))

	for _, f := range scoringFactors {
		result := f.evaluate(profile, product, f.weight)
		if result.excluded {
			return nil
		}
		total += result.contribution
		if result.reason != "" && result.contribution >= f.weight*reasonVisibilityThreshold {
			reasons = append(reasons, result.reason)
		}
	}

	score := int(math.Round(math.Min(100, math.Max(0, total))))
	return &models.MatchResult{
		Product:    product,
		MatchScore: score,
		Reasons:    reasons,
	}
}

// evaluateAgeEligibility 年龄门槛：区间内满分，区间外整体排除
func evaluateAgeEligibility(profile *models.UserProfile, product *models.Product, weight float64) factorResult {
	if !product.AgeEligible(profile.Age) {
		return factorResult{excluded: true}
	}
	return factorResult{
		contribution: weight,
		reason:       fmt.Sprintf("年龄符合产品投保要求（%s）", product.AgeRange()),
	}
}

// evaluateRiskAlignment 风险匹配：按五级有序域的距离递减给分
func evaluateRiskAlignment(profile *models.UserProfile, product *models.Product, weight float64) factorResult {
	userIdx := models.RiskLevelIndex(profile.RiskTolerance)
	productIdx := models.RiskLevelIndex(product.RiskLevel)
	if userIdx < 0 || productIdx < 0 {
		// 风险等级缺失或非法时该因子不给分，评分继续
		return factorResult{}
	}

	distance := userIdx - productIdx
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return factorResult{
			contribution: weight,
			reason:       "风险等级与您的偏好完全匹配",
		}
	case 1:
		return factorResult{
			contribution: weight * 0.6,
			reason:       "风险等级与您的偏好接近",
		}
	default:
		return factorResult{contribution: weight * 0.2}
	}
}

// evaluateAffordability 费用匹配：投资金额达到最低保费满分，不足时按比例给分
func evaluateAffordability(profile *models.UserProfile, product *models.Product, weight float64) factorResult {
	if product.MinPremium <= 0 {
		return factorResult{
			contribution: weight,
			reason:       "无最低保费门槛，投入金额灵活",
		}
	}
	if profile.InvestmentAmount >= product.MinPremium {
		return factorResult{
			contribution: weight,
			reason:       "最低保费在您的投资预算范围内",
		}
	}

	ratio := profile.InvestmentAmount / product.MinPremium
	if ratio < 0 {
		ratio = 0
	}
	return factorResult{
		contribution: weight * ratio,
		reason:       "投资预算接近产品最低保费要求",
	}
}

// evaluateRegionalFit 地区匹配：全国销售或覆盖所在地区满分，否则不给分
func evaluateRegionalFit(profile *models.UserProfile, product *models.Product, weight float64) factorResult {
	if !product.CoversLocation(profile.Location) {
		return factorResult{}
	}
	reason := "产品销售范围覆盖您所在地区"
	if product.SalesScope == models.SalesScopeNationwide {
		reason = "产品全国销售，不受地区限制"
	}
	return factorResult{contribution: weight, reason: reason}
}

// evaluateHorizonFit 退休期限匹配：年金类产品偏好较长的积累期
// 软性启发因子，产品信息不足时按中性处理，不会报错
func evaluateHorizonFit(profile *models.UserProfile, product *models.Product, weight float64) factorResult {
	if !strings.Contains(product.InsuranceType, "年金") {
		// 非年金类产品对退休期限不敏感
		return factorResult{contribution: weight}
	}

	years := profile.YearsToRetirement()
	switch {
	case years >= 10:
		return factorResult{
			contribution: weight,
			reason:       "距离退休时间充足，适合年金类长期养老规划",
		}
	case years >= 5:
		return factorResult{contribution: weight * 0.6}
	default:
		return factorResult{contribution: weight * 0.3}
	}
}
