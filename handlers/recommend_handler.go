package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/services"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

// APIVersion 对外接口版本号
const APIVersion = "3.0"

// RecommendRequest 推荐接口请求体
// 指针字段用于区分"未提供"和"提供了零值"
type RecommendRequest struct {
	Age              *float64               `json:"age" example:"35"`
	AnnualIncome     *float64               `json:"annual_income" example:"25.0"` // 万元
	RiskTolerance    *string                `json:"risk_tolerance" example:"中"`
	Location         string                 `json:"location,omitempty" example:"北京"`
	SocialSecurity   string                 `json:"social_security,omitempty" example:"城镇职工"`
	RetirementAge    *int                   `json:"retirement_age,omitempty" example:"60"`
	InvestmentAmount *float64               `json:"investment_amount,omitempty" example:"12.0"` // 万元
	TopN             *int                   `json:"top_n,omitempty" example:"5"`
	FilterCriteria   *models.FilterCriteria `json:"filter_criteria,omitempty"`
	FamilyStatus     string                 `json:"family_status,omitempty"`
	HealthStatus     string                 `json:"health_status,omitempty"`
	LiquidityNeeds   string                 `json:"liquidity_needs,omitempty"`
}

// RecommendHandler godoc
// @Summary 获取养老金产品推荐
// @Description 根据用户信息评分全量产品目录，返回排序后的推荐列表和个性化建议
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "用户信息"
// @Success 200 {object} models.RecommendResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Router /recommend [post]
func RecommendHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams, "请求体必须为JSON格式")
		return
	}

	profile, ok := buildProfile(w, &req)
	if !ok {
		return
	}

	// 每次提交都生成新的用户ID，画像入缓存后不可修改
	userID := services.SaveUserProfile(cfg, profile)

	topN := cfg.Recommender.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	if topN > cfg.Recommender.MaxTopN {
		topN = cfg.Recommender.MaxTopN
	}

	set, err := services.Recommend(profile, topN, req.FilterCriteria)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidTopN) {
			utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams, err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, models.CodeServerError, err.Error())
		return
	}

	logger.Info("推荐请求处理完成",
		"user_id", userID,
		"evaluated", set.TotalProductsEvaluated,
		"returned", len(set.Results))

	writeRecommendResponse(w, userID, profile, set)
}

// GetUserRecommendationHandler godoc
// @Summary 获取已保存画像的推荐内容
// @Description 基于已保存的用户画像重新计算推荐和建议，无需重复提交画像
// @Tags 推荐
// @Accept json
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} models.RecommendResponse "成功"
// @Failure 404 {object} models.ErrorResponse "用户画像不存在"
// @Router /api/recommendation/{user_id} [get]
func GetUserRecommendationHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		utils.WriteError(w, http.StatusBadRequest, models.CodeMissingParams, "缺少必需字段: user_id")
		return
	}

	profile, err := services.GetUserProfile(userID)
	if err != nil {
		if errors.Is(err, utils.ErrProfileNotFound) {
			utils.WriteError(w, http.StatusNotFound, models.CodeProfileNotFound,
				fmt.Sprintf("未找到用户ID: %s", userID))
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, models.CodeServerError, err.Error())
		return
	}

	set, err := services.Recommend(profile, cfg.Recommender.DefaultTopN, nil)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, models.CodeServerError, err.Error())
		return
	}

	writeRecommendResponse(w, userID, profile, set)
}

// buildProfile 校验请求并构建带默认值的用户画像
// 校验失败时直接写入错误响应并返回false，核心服务不会收到非法画像
func buildProfile(w http.ResponseWriter, req *RecommendRequest) (*models.UserProfile, bool) {
	missing := make([]string, 0)
	if req.Age == nil {
		missing = append(missing, "age")
	}
	if req.AnnualIncome == nil {
		missing = append(missing, "annual_income")
	}
	if req.RiskTolerance == nil {
		missing = append(missing, "risk_tolerance")
	}
	if len(missing) > 0 {
		utils.WriteError(w, http.StatusBadRequest, models.CodeMissingParams,
			fmt.Sprintf("缺少必需字段: %s", strings.Join(missing, ", ")))
		return nil, false
	}

	if *req.Age < 0 || *req.Age > 120 {
		utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams, "年龄必须在0-120岁之间")
		return nil, false
	}
	if *req.AnnualIncome < 0 {
		utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams, "年收入必须为非负数")
		return nil, false
	}
	if models.RiskLevelIndex(*req.RiskTolerance) < 0 {
		utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams,
			fmt.Sprintf("风险偏好必须是: %s", strings.Join(models.RiskLevels, ", ")))
		return nil, false
	}

	profile := &models.UserProfile{
		Age:                   int(*req.Age),
		AnnualIncome:          *req.AnnualIncome,
		RiskTolerance:         *req.RiskTolerance,
		SocialSecurityType:    models.DefaultSocialSecurityType,
		ExpectedRetirementAge: models.DefaultRetirementAge,
		InvestmentAmount:      *req.AnnualIncome * 0.5, // 默认投资金额为年收入的一半
		Location:              models.DefaultLocation,
		FamilyStatus:          req.FamilyStatus,
		HealthStatus:          req.HealthStatus,
		LiquidityNeeds:        req.LiquidityNeeds,
	}
	if req.SocialSecurity != "" {
		profile.SocialSecurityType = req.SocialSecurity
	}
	if req.RetirementAge != nil {
		profile.ExpectedRetirementAge = *req.RetirementAge
	}
	if req.InvestmentAmount != nil {
		profile.InvestmentAmount = *req.InvestmentAmount
	}
	if req.Location != "" {
		profile.Location = req.Location
	}

	return profile, true
}

// writeRecommendResponse 组装推荐接口的统一响应
func writeRecommendResponse(w http.ResponseWriter, userID string, profile *models.UserProfile, set *models.RecommendationSet) {
	advice := services.GeneratePersonalizedAdvice(profile, set)

	utils.WriteJSON(w, http.StatusOK, models.RecommendResponse{
		Success:                true,
		Timestamp:              time.Now().Format(time.RFC3339),
		APIVersion:             APIVersion,
		UserID:                 userID,
		UserProfile:            profile,
		TotalProductsEvaluated: set.TotalProductsEvaluated,
		RecommendationCount:    len(set.Results),
		Recommendations:        utils.FormatRecommendations(set.Results),
		PersonalizedAdvice:     advice,
	})
}
