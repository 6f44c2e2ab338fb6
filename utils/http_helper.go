package utils

import (
	"encoding/json"
	"net/http"

	"github.com/Guo-Alice/pension-dify-system/models"
)

// WriteJSON 写入格式化JSON响应，使其更易读
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	encoder.Encode(data)
}

// WriteError 写入错误响应，message为空时使用错误码默认消息
func WriteError(w http.ResponseWriter, status int, code int, message string) {
	WriteJSON(w, status, models.NewErrorResponse(code, message))
}

// FormatRecommendations 将评分结果列表转换为响应格式
func FormatRecommendations(results []*models.MatchResult) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(results))
	for _, r := range results {
		recommendations = append(recommendations, models.NewRecommendation(r))
	}
	return recommendations
}
