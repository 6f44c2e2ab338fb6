package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Enabled         bool   `yaml:"enabled"` // 是否从MySQL加载产品目录
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Catalog struct {
		CSVPath      string `yaml:"csv_path"`      // CSV产品数据文件路径
		AutoReload   bool   `yaml:"auto_reload"`   // 是否启用每日定时重载
		ReloadHour   int    `yaml:"reload_hour"`   // 每天重载目录的小时（0-23）
		ReloadMinute int    `yaml:"reload_minute"` // 每天重载目录的分钟（0-59）
	} `yaml:"catalog"`
	Recommender struct {
		DefaultTopN int `yaml:"default_top_n"` // 默认返回推荐数量
		MaxTopN     int `yaml:"max_top_n"`     // 单次请求最多返回的推荐数量
		SearchLimit int `yaml:"search_limit"`  // 搜索接口默认返回数量
		ProfileCap  int `yaml:"profile_cap"`   // 用户画像缓存上限，超出后淘汰最早的画像
	} `yaml:"recommender"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
		DefaultHour      int `yaml:"default_hour"`       // 默认执行小时
		DefaultMinute    int `yaml:"default_minute"`     // 默认执行分钟
	} `yaml:"scheduler"`
}

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")
		applyOverrides(&cfg)
		applyDefaults(&cfg)
		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

// applyOverrides 从环境变量加载敏感信息并计算派生字段
func applyOverrides(cfg *Config) {
	// 数据库用户名和密码优先从环境变量读取
	if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
		cfg.DB.Username = envUsername
	}
	if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
		cfg.DB.Password = envPassword
	}

	// 计算 Server.Addr 字段
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	// 计算 DB.DSN 字段
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		if cfg.DB.Charset == "" {
			cfg.DB.Charset = "utf8mb4"
		}

		parseTime := ""
		if cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}

		cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}
}

// applyDefaults 填充缺失的非敏感配置项
func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
	if cfg.Catalog.CSVPath == "" {
		cfg.Catalog.CSVPath = "data/pension_products.csv"
	}
	if cfg.Recommender.DefaultTopN <= 0 {
		cfg.Recommender.DefaultTopN = 5
	}
	if cfg.Recommender.MaxTopN <= 0 {
		cfg.Recommender.MaxTopN = 50
	}
	if cfg.Recommender.SearchLimit <= 0 {
		cfg.Recommender.SearchLimit = 10
	}
	if cfg.Recommender.ProfileCap <= 0 {
		cfg.Recommender.ProfileCap = 10000
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	// 只从环境变量中加载敏感信息
	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
		cfg.DB.Enabled = true
	}

	if csvPath := os.Getenv("CATALOG_CSV_PATH"); csvPath != "" {
		cfg.Catalog.CSVPath = csvPath
	}

	applyDefaults(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}
