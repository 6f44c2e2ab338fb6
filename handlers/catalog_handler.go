package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/services"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

// HomeHandler godoc
// @Summary API主页
// @Description 服务信息、端点列表和目录概况
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router / [get]
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"service":     "养老金产品推荐系统API",
		"version":     APIVersion,
		"description": "基于真实养老保险数据的智能推荐系统，专为Dify工作流设计",
		"endpoints": map[string]string{
			"POST /recommend":   "获取养老金产品推荐",
			"GET /product/{id}": "获取产品详细信息",
			"GET /search":       "搜索产品",
			"GET /companies":    "保险公司列表",
			"GET /stats":        "系统统计",
			"GET /health":       "健康检查",
		},
		"status": "运行中",
		"data_info": map[string]interface{}{
			"total_products": len(services.CatalogProducts()),
			"data_source":    services.CatalogSource(),
			"companies":      len(services.AllCompanies()),
		},
	})
}

// HealthHandler godoc
// @Summary 健康检查
// @Description 进程和初始化状态，包含目录数据来源以便观察演示数据兜底
// @Tags 系统
// @Produce json
// @Success 200 {object} models.HealthResponse "成功"
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:            "healthy",
		Timestamp:         time.Now().Format(time.RFC3339),
		SystemInitialized: services.CatalogLoaded(),
		DataLoaded:        len(services.CatalogProducts()) > 0,
		DataSource:        services.CatalogSource(),
		ProductCount:      len(services.CatalogProducts()),
		ProfileCount:      services.ProfileCount(),
	})
}

// StatsHandler godoc
// @Summary 系统统计
// @Description 基于归一化目录的类型、风险等级、公司分布和保费统计
// @Tags 目录
// @Produce json
// @Success 200 {object} models.StatsResponse "成功"
// @Router /stats [get]
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.StatsResponse{
		Success:    true,
		Statistics: services.CatalogStatistics(),
		Timestamp:  time.Now().Format(time.RFC3339),
	})
}

// CompaniesHandler godoc
// @Summary 保险公司列表
// @Description 目录中去重排序后的保险公司
// @Tags 目录
// @Produce json
// @Success 200 {object} models.CompaniesResponse "成功"
// @Router /companies [get]
func CompaniesHandler(w http.ResponseWriter, r *http.Request) {
	companies := services.AllCompanies()
	utils.WriteJSON(w, http.StatusOK, models.CompaniesResponse{
		Success:   true,
		Companies: companies,
		Count:     len(companies),
	})
}

// ProductDetailHandler godoc
// @Summary 获取产品详细信息
// @Description 按产品ID精确查找，不存在时返回404
// @Tags 目录
// @Produce json
// @Param id path string true "产品ID"
// @Success 200 {object} models.ProductDetailResponse "成功"
// @Failure 404 {object} models.ErrorResponse "产品不存在"
// @Router /product/{id} [get]
func ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := services.GetProduct(productID)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.WriteError(w, http.StatusNotFound, models.CodeProductNotFound,
				fmt.Sprintf("未找到产品ID: %s", productID))
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, models.CodeServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.ProductDetailResponse{
		Success: true,
		Product: product,
	})
}

// SearchHandler godoc
// @Summary 搜索产品
// @Description 按关键词搜索产品名称、保险公司和特色关键词，大小写不敏感
// @Tags 目录
// @Produce json
// @Param keyword query string true "搜索关键词"
// @Param limit query int false "返回数量上限"
// @Success 200 {object} models.SearchResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Router /search [get]
func SearchHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		utils.WriteError(w, http.StatusBadRequest, models.CodeMissingParams, "请提供搜索关键词")
		return
	}

	limit := cfg.Recommender.SearchLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidParams, "limit必须为非负整数")
			return
		}
		limit = parsed
	}

	results := services.SearchProducts(keyword, limit)
	utils.WriteJSON(w, http.StatusOK, models.SearchResponse{
		Success: true,
		Keyword: keyword,
		Count:   len(results),
		Results: results,
	})
}

// ReloadCatalogHandler godoc
// @Summary 重载产品目录
// @Description 管理接口：重新加载目录并整体替换当前快照，读请求不会看到中间状态
// @Tags 目录
// @Produce json
// @Success 200 {object} models.ReloadResponse "成功"
// @Router /api/catalog/reload [post]
func ReloadCatalogHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	services.LoadCatalog(cfg)
	logger.Info("产品目录已手动重载",
		"count", len(services.CatalogProducts()),
		"source", services.CatalogSource())

	utils.WriteJSON(w, http.StatusOK, models.ReloadResponse{
		Success:      true,
		ProductCount: len(services.CatalogProducts()),
		DataSource:   services.CatalogSource(),
		Timestamp:    time.Now().Format(time.RFC3339),
	})
}
