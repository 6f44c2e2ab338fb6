package models

// 用户画像可选字段的默认值
const (
	DefaultSocialSecurityType = "城镇职工"
	DefaultRetirementAge      = 60
	DefaultLocation           = SalesScopeNationwide
)

// UserProfile 用户画像，存入画像缓存后不可变
// investment_amount 缺省时默认为年收入的一半
type UserProfile struct {
	Age                   int     `json:"age"`
	AnnualIncome          float64 `json:"annual_income"` // 年收入，万元
	RiskTolerance         string  `json:"risk_tolerance"`
	SocialSecurityType    string  `json:"social_security_type"`
	ExpectedRetirementAge int     `json:"expected_retirement_age"`
	InvestmentAmount      float64 `json:"investment_amount"` // 计划投资金额，万元
	Location              string  `json:"location"`
	FamilyStatus          string  `json:"family_status,omitempty"`
	HealthStatus          string  `json:"health_status,omitempty"`
	LiquidityNeeds        string  `json:"liquidity_needs,omitempty"`
}

// YearsToRetirement 距离计划退休年龄的年数，已过退休年龄时为0
func (u *UserProfile) YearsToRetirement() int {
	years := u.ExpectedRetirementAge - u.Age
	if years < 0 {
		return 0
	}
	return years
}
