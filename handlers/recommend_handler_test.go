package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/services"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Catalog.CSVPath = "testdata/不存在的文件.csv" // 触发演示数据兜底
	cfg.Recommender.DefaultTopN = 5
	cfg.Recommender.MaxTopN = 50
	cfg.Recommender.SearchLimit = 10
	cfg.Recommender.ProfileCap = 100
	return cfg
}

func TestMain(m *testing.M) {
	logger.Init(&config.Config{})
	services.LoadCatalog(testConfig())
	os.Exit(m.Run())
}

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, testConfig())
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecommendHandler_Success(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/recommend",
		`{"age": 35, "annual_income": 25.0, "risk_tolerance": "中", "investment_amount": 12.0, "location": "北京", "top_n": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.APIVersion != APIVersion {
		t.Errorf("Expected api_version %s, got %s", APIVersion, resp.APIVersion)
	}
	if len(resp.UserID) != 12 {
		t.Errorf("Expected 12-char user_id, got '%s'", resp.UserID)
	}
	if resp.TotalProductsEvaluated != 6 {
		t.Errorf("Expected 6 products evaluated, got %d", resp.TotalProductsEvaluated)
	}
	if resp.RecommendationCount != len(resp.Recommendations) {
		t.Errorf("recommendation_count %d does not match list length %d",
			resp.RecommendationCount, len(resp.Recommendations))
	}
	if len(resp.Recommendations) == 0 || len(resp.Recommendations) > 5 {
		t.Fatalf("Expected 1-5 recommendations, got %d", len(resp.Recommendations))
	}
	for _, r := range resp.Recommendations {
		if r.MatchPercentage != fmt.Sprintf("%d%%", r.MatchScore) {
			t.Errorf("Expected match_percentage '%d%%', got '%s'", r.MatchScore, r.MatchPercentage)
		}
		if !strings.Contains(r.AgeRange, "岁") {
			t.Errorf("Expected age_range like '18-65岁', got '%s'", r.AgeRange)
		}
		product, err := services.GetProduct(r.ProductID)
		if err != nil {
			t.Fatalf("Recommended unknown product %s: %v", r.ProductID, err)
		}
		if !product.AgeEligible(35) {
			t.Errorf("Product %s (%s) excludes age 35", r.ProductID, r.AgeRange)
		}
	}
	if resp.PersonalizedAdvice == nil || len(resp.PersonalizedAdvice.NextSteps) == 0 {
		t.Error("Expected personalized advice with next steps")
	}
}

func TestRecommendHandler_FilterCriteria(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/recommend",
		`{"age": 35, "annual_income": 25.0, "risk_tolerance": "中", "filter_criteria": {"insurance_type": "养老年金"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.TotalProductsEvaluated != 3 {
		t.Errorf("Expected 3 products evaluated after filter, got %d", resp.TotalProductsEvaluated)
	}
	for _, r := range resp.Recommendations {
		if r.InsuranceType != "养老年金" {
			t.Errorf("Filter leaked product of type '%s'", r.InsuranceType)
		}
	}
}

func TestRecommendHandler_MissingFields(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/recommend", `{"age": 35}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Success {
		t.Error("Expected success=false")
	}
	if !strings.Contains(resp.Error, "缺少必需字段") {
		t.Errorf("Expected missing-field message, got '%s'", resp.Error)
	}
	if !strings.Contains(resp.Error, "annual_income") || !strings.Contains(resp.Error, "risk_tolerance") {
		t.Errorf("Expected message to name missing fields, got '%s'", resp.Error)
	}
}

func TestRecommendHandler_InvalidValues(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		name     string
		body     string
		expected string
	}{
		{"age out of range", `{"age": 130, "annual_income": 25.0, "risk_tolerance": "中"}`, "年龄必须在0-120岁之间"},
		{"negative income", `{"age": 35, "annual_income": -1, "risk_tolerance": "中"}`, "年收入必须为非负数"},
		{"unknown risk", `{"age": 35, "annual_income": 25.0, "risk_tolerance": "极高"}`, "风险偏好必须是"},
		{"negative top_n", `{"age": 35, "annual_income": 25.0, "risk_tolerance": "中", "top_n": -1}`, "top_n不能为负数"},
		{"broken json", `{"age": `, "请求体必须为JSON格式"},
	}

	for _, tc := range cases {
		rec := postJSON(t, router, "/recommend", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
			continue
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: failed to decode error response: %v", tc.name, err)
			continue
		}
		if !strings.Contains(resp.Error, tc.expected) {
			t.Errorf("%s: expected message containing '%s', got '%s'", tc.name, tc.expected, resp.Error)
		}
	}
}

func TestRecommendHandler_TopNClamped(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/recommend",
		`{"age": 35, "annual_income": 25.0, "risk_tolerance": "中", "top_n": 9999}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.RecommendationCount > testConfig().Recommender.MaxTopN {
		t.Errorf("Expected top_n clamped to %d, got %d",
			testConfig().Recommender.MaxTopN, resp.RecommendationCount)
	}
}

func TestGetUserRecommendation_RoundTrip(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/recommend",
		`{"age": 35, "annual_income": 25.0, "risk_tolerance": "中"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var first models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	rec = getPath(t, router, "/api/recommendation/"+first.UserID)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for saved profile, got %d: %s", rec.Code, rec.Body.String())
	}
	var second models.RecommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if second.UserID != first.UserID {
		t.Errorf("Expected same user_id, got '%s' vs '%s'", second.UserID, first.UserID)
	}
	if second.UserProfile == nil || second.UserProfile.Age != 35 {
		t.Error("Expected saved profile to be replayed")
	}
}

func TestGetUserRecommendation_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/api/recommendation/doesnotexist")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown user, got %d", rec.Code)
	}
}

func TestProductDetailHandler(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/product/P001")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.ProductDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Product == nil || resp.Product.ProductID != "P001" {
		t.Errorf("Expected product P001, got %+v", resp.Product)
	}

	rec = getPath(t, router, "/product/NOPE")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "未找到产品ID: NOPE") {
		t.Errorf("Expected not-found message with product id, got %s", rec.Body.String())
	}
}

func TestSearchHandler(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/search?keyword=年金")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Keyword != "年金" {
		t.Errorf("Expected keyword echoed back, got '%s'", resp.Keyword)
	}
	if resp.Count == 0 || resp.Count != len(resp.Results) {
		t.Errorf("Expected non-empty consistent results, count=%d len=%d", resp.Count, len(resp.Results))
	}
}

func TestSearchHandler_BadParams(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing keyword, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "请提供搜索关键词") {
		t.Errorf("Expected missing-keyword message, got %s", rec.Body.String())
	}

	rec = getPath(t, router, "/search?keyword=年金&limit=-3")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative limit, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected status healthy, got '%s'", resp.Status)
	}
	if !resp.SystemInitialized || !resp.DataLoaded {
		t.Error("Expected initialized system with loaded data")
	}
	if resp.DataSource != services.SourceDemo {
		t.Errorf("Expected demo data source with missing CSV, got '%s'", resp.DataSource)
	}
}

func TestCompaniesHandler(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/companies")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.CompaniesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != len(resp.Companies) || resp.Count == 0 {
		t.Errorf("Expected consistent non-empty company list, count=%d len=%d",
			resp.Count, len(resp.Companies))
	}
}

func TestStatsHandler(t *testing.T) {
	router := newTestRouter()

	rec := getPath(t, router, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Statistics == nil || resp.Statistics.TotalProducts != 6 {
		t.Errorf("Expected statistics over 6 demo products, got %+v", resp.Statistics)
	}
}

func TestReloadCatalogHandler(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.ReloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.ProductCount != 6 {
		t.Errorf("Expected successful reload of 6 demo products, got %+v", resp)
	}
	if resp.DataSource != services.SourceDemo {
		t.Errorf("Expected demo data source after reload, got '%s'", resp.DataSource)
	}
}
