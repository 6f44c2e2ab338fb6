package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Guo-Alice/pension-dify-system/config"
	_ "github.com/Guo-Alice/pension-dify-system/docs" // 导入 swagger 文档
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	r.Get("/", HomeHandler)
	r.Get("/health", HealthHandler)
	r.Get("/stats", StatsHandler)
	r.Get("/companies", CompaniesHandler)
	r.Get("/product/{id}", ProductDetailHandler)

	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		SearchHandler(w, r, cfg)
	})

	r.Post("/recommend", func(w http.ResponseWriter, r *http.Request) {
		RecommendHandler(w, r, cfg)
	})

	r.Get("/api/recommendation/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		GetUserRecommendationHandler(w, r, cfg)
	})

	r.Post("/api/catalog/reload", func(w http.ResponseWriter, r *http.Request) {
		ReloadCatalogHandler(w, r, cfg)
	})
}
