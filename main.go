package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/swaggo/swag" // 导入 swag

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/db"
	_ "github.com/Guo-Alice/pension-dify-system/docs" // 导入 swagger 文档
	"github.com/Guo-Alice/pension-dify-system/handlers"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/scheduler"
	"github.com/Guo-Alice/pension-dify-system/services"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// MySQL仅作为产品目录数据源，连接失败时降级到CSV或演示数据
	if cfg.DB.Enabled {
		if err := db.InitMySQLWithConfig(cfg); err != nil {
			logger.Warn("初始化MySQL失败，目录将从CSV或演示数据加载", "error", err)
		} else {
			logger.Info("MySQL连接成功",
				"max_open_conns", cfg.DB.MaxOpenConns,
				"max_idle_conns", cfg.DB.MaxIdleConns,
				"conn_max_lifetime", cfg.DB.ConnMaxLifetime)
		}
	}

	// 加载产品目录，数据源全部不可用时回退到演示数据
	services.LoadCatalog(cfg)
	logger.Info("系统初始化完成",
		"total_products", len(services.CatalogProducts()),
		"data_source", services.CatalogSource())

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	handlers.RegisterRoutes(r, cfg)

	// 目录定时重载
	scheduler.Start(cfg)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("服务器启动", "address", serverAddr)
	logger.Info("Swagger文档可访问", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), r))
}
