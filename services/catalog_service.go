package services

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/db"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/models"
	"github.com/Guo-Alice/pension-dify-system/repository"
	"github.com/Guo-Alice/pension-dify-system/utils"
)

// 目录数据来源标识
const (
	SourceMySQL = "mysql"
	SourceCSV   = "csv"
	SourceDemo  = "demo"
)

// 归一化时填充的目录级默认值
const (
	defaultInsuranceType = "养老年金"
	defaultPaymentType   = "期缴"
	defaultRiskLevel     = "中"
	defaultCoverage      = "养老保障"
	defaultSalesChannel  = "银保渠道"
	defaultMaxAge        = 70
)

// catalogSnapshot 一个完整的目录版本，加载后只读
// 重载通过整体替换指针完成，读请求要么看到旧版本要么看到新版本
type catalogSnapshot struct {
	products []models.Product
	byID     map[string]int // product_id -> products下标
	source   string
	loadedAt time.Time
}

var catalog atomic.Pointer[catalogSnapshot]

// LoadCatalog 加载产品目录并原子替换当前快照
// 依次尝试MySQL、CSV，全部失败时回退到内置演示数据，保证系统始终可查询
func LoadCatalog(cfg *config.Config) {
	var products []models.Product
	source := SourceDemo

	if cfg.DB.Enabled && db.DB != nil {
		loaded, err := repository.LoadProductsFromMySQL()
		if err != nil {
			logger.Warn("从MySQL加载产品目录失败", "error", err)
		} else if len(loaded) > 0 {
			products = loaded
			source = SourceMySQL
		}
	}

	if products == nil {
		loaded, err := repository.LoadProductsFromCSV(cfg.Catalog.CSVPath)
		if err != nil {
			logger.Warn("从CSV加载产品目录失败", "path", cfg.Catalog.CSVPath, "error", err)
		} else if len(loaded) > 0 {
			products = loaded
			source = SourceCSV
		}
	}

	if products == nil {
		logger.Warn("没有可用的产品数据源，使用演示数据")
		products = demoProducts()
	}

	installSnapshot(normalizeProducts(products), source)
	logger.Info("产品目录加载完成", "count", len(products), "source", source)
}

// installSnapshot 构建索引并原子替换目录快照
func installSnapshot(products []models.Product, source string) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ProductID] = i
	}
	catalog.Store(&catalogSnapshot{
		products: products,
		byID:     byID,
		source:   source,
		loadedAt: time.Now(),
	})
}

// normalizeProducts 归一化产品记录：裁剪空白、填充默认值、纠正非法区间
// 幂等：对已归一化的数据重复执行不改变结果
func normalizeProducts(products []models.Product) []models.Product {
	normalized := make([]models.Product, len(products))
	for i, p := range products {
		p.ProductID = strings.TrimSpace(p.ProductID)
		p.ProductName = strings.TrimSpace(p.ProductName)
		p.InsuranceCompany = strings.TrimSpace(p.InsuranceCompany)
		p.InsuranceType = strings.TrimSpace(p.InsuranceType)
		p.PaymentType = strings.TrimSpace(p.PaymentType)
		p.RiskLevel = strings.TrimSpace(p.RiskLevel)
		p.Coverage = strings.TrimSpace(p.Coverage)
		p.SalesChannel = strings.TrimSpace(p.SalesChannel)
		p.SalesScope = strings.TrimSpace(p.SalesScope)

		if p.ProductName == "" {
			p.ProductName = "未命名产品"
		}
		if p.InsuranceCompany == "" {
			p.InsuranceCompany = "未知"
		}
		if p.InsuranceType == "" {
			p.InsuranceType = defaultInsuranceType
		}
		if p.PaymentType == "" {
			p.PaymentType = defaultPaymentType
		}
		if models.RiskLevelIndex(p.RiskLevel) < 0 {
			p.RiskLevel = defaultRiskLevel
		}
		if p.Coverage == "" {
			p.Coverage = defaultCoverage
		}
		if p.SalesChannel == "" {
			p.SalesChannel = defaultSalesChannel
		}
		if p.SalesScope == "" {
			p.SalesScope = models.SalesScopeNationwide
		}

		if p.MinAge < 0 {
			p.MinAge = 0
		}
		if p.MaxAge <= 0 {
			p.MaxAge = defaultMaxAge
		}
		if p.MinAge > p.MaxAge {
			p.MinAge, p.MaxAge = p.MaxAge, p.MinAge
		}
		if p.MinPremium < 0 {
			p.MinPremium = 0
		}

		p.FeatureKeywords = utils.DeduplicateSlice(p.FeatureKeywords)

		normalized[i] = p
	}
	return normalized
}

// currentSnapshot 返回当前目录快照，未加载时返回空快照
func currentSnapshot() *catalogSnapshot {
	if s := catalog.Load(); s != nil {
		return s
	}
	return &catalogSnapshot{byID: map[string]int{}}
}

// CatalogLoaded 目录是否已完成首次加载
func CatalogLoaded() bool {
	return catalog.Load() != nil
}

// CatalogProducts 返回当前快照中的全部产品，目录顺序
func CatalogProducts() []models.Product {
	return currentSnapshot().products
}

// CatalogSource 当前目录的数据来源（mysql/csv/demo）
func CatalogSource() string {
	return currentSnapshot().source
}

// CatalogLoadedAt 当前目录的加载时间
func CatalogLoadedAt() time.Time {
	return currentSnapshot().loadedAt
}

// GetProduct 按产品ID精确查找，不存在时返回ErrProductNotFound
func GetProduct(productID string) (*models.Product, error) {
	s := currentSnapshot()
	i, ok := s.byID[productID]
	if !ok {
		return nil, utils.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// SearchProducts 按关键词搜索产品名称、保险公司和特色关键词
// 大小写不敏感的子串匹配，按目录顺序返回，limit<=0时不限数量
func SearchProducts(keyword string, limit int) []models.Product {
	results := make([]models.Product, 0)
	for _, p := range currentSnapshot().products {
		if limit > 0 && len(results) >= limit {
			break
		}
		if matchesKeyword(&p, keyword) {
			results = append(results, p)
		}
	}
	return results
}

func matchesKeyword(p *models.Product, keyword string) bool {
	if utils.ContainsIgnoreCase(p.ProductName, keyword) ||
		utils.ContainsIgnoreCase(p.InsuranceCompany, keyword) {
		return true
	}
	for _, k := range p.FeatureKeywords {
		if utils.ContainsIgnoreCase(k, keyword) {
			return true
		}
	}
	return false
}

// AllCompanies 返回去重后的保险公司列表，排序保证输出可复现
func AllCompanies() []string {
	seen := make(map[string]bool)
	companies := make([]string, 0)
	for _, p := range currentSnapshot().products {
		if !seen[p.InsuranceCompany] {
			seen[p.InsuranceCompany] = true
			companies = append(companies, p.InsuranceCompany)
		}
	}
	sort.Strings(companies)
	return companies
}

// CatalogStatistics 基于当前归一化快照计算汇总统计
func CatalogStatistics() *models.SummaryStatistics {
	s := currentSnapshot()
	stats := &models.SummaryStatistics{
		TotalProducts:  len(s.products),
		InsuranceTypes: make(map[string]int),
		RiskLevels:     make(map[string]int),
		Companies:      make(map[string]int),
		DataSource:     s.source,
	}

	premiums := make([]float64, 0, len(s.products))
	for _, p := range s.products {
		stats.InsuranceTypes[p.InsuranceType]++
		stats.RiskLevels[p.RiskLevel]++
		stats.Companies[p.InsuranceCompany]++
		premiums = append(premiums, p.MinPremium)
	}

	if len(premiums) > 0 {
		sort.Float64s(premiums)
		stats.PremiumStats = models.PremiumStats{
			Min:    premiums[0],
			Median: median(premiums),
			Max:    premiums[len(premiums)-1],
		}
	}

	return stats
}

// median 计算已排序切片的中位数，偶数个时取中间两数的均值
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// demoProducts 内置演示目录，数据源全部不可用时兜底
func demoProducts() []models.Product {
	return []models.Product{
		{
			ProductID:        "P001",
			ProductName:      "平安福寿年年养老年金保险",
			InsuranceCompany: "平安人寿",
			MinAge:           18,
			MaxAge:           65,
			InsuranceType:    "养老年金",
			PaymentType:      "期缴",
			MinPremium:       1.0,
			RiskLevel:        "中低",
			Coverage:         "养老年金给付、身故保障",
			FeatureKeywords:  []string{"养老", "年金", "稳健"},
			SalesChannel:     "银保渠道",
			SalesScope:       "全国",
		},
		{
			ProductID:        "P002",
			ProductName:      "泰康岁月有约养老年金计划",
			InsuranceCompany: "泰康人寿",
			MinAge:           30,
			MaxAge:           60,
			InsuranceType:    "养老年金",
			PaymentType:      "期缴",
			MinPremium:       5.0,
			RiskLevel:        "中",
			Coverage:         "养老年金给付、万能账户二次增值",
			FeatureKeywords:  []string{"养老", "万能账户", "终身领取"},
			SalesChannel:     "代理人渠道",
			SalesScope:       "全国",
		},
		{
			ProductID:        "P003",
			ProductName:      "国寿鑫享金生增额终身寿险",
			InsuranceCompany: "中国人寿",
			MinAge:           18,
			MaxAge:           70,
			InsuranceType:    "增额终身寿",
			PaymentType:      "趸交",
			MinPremium:       10.0,
			RiskLevel:        "中高",
			Coverage:         "身故保障、保额年复利递增",
			FeatureKeywords:  []string{"增额", "终身", "财富传承"},
			SalesChannel:     "代理人渠道",
			SalesScope:       "全国",
		},
		{
			ProductID:        "P004",
			ProductName:      "太平盛世长乐养老年金保险",
			InsuranceCompany: "太平人寿",
			MinAge:           25,
			MaxAge:           55,
			InsuranceType:    "养老年金",
			PaymentType:      "期缴",
			MinPremium:       3.0,
			RiskLevel:        "低",
			Coverage:         "养老年金给付、满期保险金",
			FeatureKeywords:  []string{"养老", "保证领取", "稳健"},
			SalesChannel:     "银保渠道",
			SalesScope:       "北京、上海、广东",
		},
		{
			ProductID:        "P005",
			ProductName:      "友邦充裕未来养老计划",
			InsuranceCompany: "友邦保险",
			MinAge:           20,
			MaxAge:           60,
			InsuranceType:    "混合型养老",
			PaymentType:      "期缴",
			MinPremium:       8.0,
			RiskLevel:        "高",
			Coverage:         "养老年金给付、投资账户收益",
			FeatureKeywords:  []string{"投资", "高收益", "灵活"},
			SalesChannel:     "代理人渠道",
			SalesScope:       "北京、上海",
		},
		{
			ProductID:        "P006",
			ProductName:      "人保寿险福满人生两全保险",
			InsuranceCompany: "人保寿险",
			MinAge:           16,
			MaxAge:           68,
			InsuranceType:    "两全保险",
			PaymentType:      "趸交",
			MinPremium:       2.0,
			RiskLevel:        "中低",
			Coverage:         "生存保险金、身故保障",
			FeatureKeywords:  []string{"两全", "返还", "保障"},
			SalesChannel:     "银保渠道",
			SalesScope:       "全国",
		},
	}
}
