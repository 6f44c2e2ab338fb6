package services

import (
	"github.com/Guo-Alice/pension-dify-system/models"
)

// GeneratePersonalizedAdvice 基于用户画像和已生成的推荐集合派生个性化建议
// 与单个产品的推荐理由不同，这里是画像层面的观察和固定的后续步骤
// 推荐集合为空时也返回完整的三段建议，解释为什么没有结果
func GeneratePersonalizedAdvice(profile *models.UserProfile, set *models.RecommendationSet) *models.PersonalizedAdvice {
	advice := &models.PersonalizedAdvice{
		GeneralAdvice:              make([]string, 0),
		ProductTypeRecommendations: make([]string, 0),
		NextSteps:                  make([]string, 0),
	}

	if set == nil || len(set.Results) == 0 {
		advice.GeneralAdvice = append(advice.GeneralAdvice,
			"未找到符合条件的产品，建议调整年龄、投资预算或风险偏好后重新尝试")
		if set != nil && set.TotalProductsEvaluated == 0 {
			advice.GeneralAdvice = append(advice.GeneralAdvice,
				"当前过滤条件过于严格，没有产品参与评分，可以放宽filter_criteria")
		}
		advice.NextSteps = append(advice.NextSteps,
			"放宽筛选条件后重新获取推荐",
			"咨询持牌保险顾问了解更多产品选择")
		return advice
	}

	advice.GeneralAdvice = append(advice.GeneralAdvice, profileObservations(profile, set)...)

	// 按排名中首次出现的顺序列出产品类型
	seen := make(map[string]bool)
	for _, r := range set.Results {
		t := r.Product.InsuranceType
		if !seen[t] {
			seen[t] = true
			advice.ProductTypeRecommendations = append(advice.ProductTypeRecommendations, t)
		}
	}

	advice.NextSteps = append(advice.NextSteps,
		"对比推荐产品的保障责任与费用明细",
		"通过官方渠道核实产品销售资质和条款",
		"咨询持牌保险顾问制定具体投保方案")

	return advice
}

// profileObservations 画像层面的观察建议
func profileObservations(profile *models.UserProfile, set *models.RecommendationSet) []string {
	observations := make([]string, 0)

	// 预算观察：投资金额低于榜首产品的最低保费时给出提醒
	top := set.Results[0].Product
	if profile.InvestmentAmount <= 0 {
		observations = append(observations,
			"当前计划投资金额为零，推荐产品的费用匹配度较低，建议先明确可投入的养老资金")
	} else if top.MinPremium > 0 && profile.InvestmentAmount < top.MinPremium {
		observations = append(observations,
			"计划投资金额低于部分推荐产品的最低保费，建议适当提高投资预算或关注门槛更低的产品")
	}

	switch profile.RiskTolerance {
	case "低", "中低":
		observations = append(observations,
			"您的风险偏好较为保守，已优先推荐稳健型养老产品")
	case "中高", "高":
		observations = append(observations,
			"您的风险偏好较高，可关注带有投资账户的产品，但请留意收益波动风险")
	}

	switch {
	case profile.Age < 35:
		observations = append(observations,
			"距离退休时间较长，可考虑长期年金类产品尽早积累养老资金")
	case profile.Age >= 50:
		observations = append(observations,
			"临近退休年龄，建议关注缴费期短、领取方式灵活的产品")
	}

	if profile.LiquidityNeeds != "" {
		observations = append(observations,
			"您提到了流动性需求，投保前请确认产品的退保和减保规则")
	}

	return observations
}
