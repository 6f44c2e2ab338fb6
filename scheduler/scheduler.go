package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/Guo-Alice/pension-dify-system/config"
	"github.com/Guo-Alice/pension-dify-system/logger"
	"github.com/Guo-Alice/pension-dify-system/services"
)

// 验证小时和分钟是否有效
func validateHourMinute(cfg *config.Config, hour, minute int) (int, int) {
	defaultHour := cfg.Scheduler.DefaultHour
	defaultMinute := cfg.Scheduler.DefaultMinute

	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour, "default", defaultHour)
		hour = defaultHour
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute, "default", defaultMinute)
		minute = defaultMinute
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 目录重载任务状态
type taskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// Scheduler 每日定时重载产品目录的调度器
// 重载通过目录快照的整体替换完成，与请求处理并发安全
type Scheduler struct {
	cfg    *config.Config
	reload taskStatus
	mutex  sync.Mutex
}

// Start 启动调度器，未开启auto_reload时不做任何事
func Start(cfg *config.Config) {
	if !cfg.Catalog.AutoReload {
		logger.Info("目录定时重载未启用")
		return
	}

	s := &Scheduler{cfg: cfg}
	s.initTask()
	go s.run()

	logger.Info("调度器已启动", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
}

// 初始化重载任务
func (s *Scheduler) initTask() {
	now := time.Now()
	hour, minute := validateHourMinute(s.cfg, s.cfg.Catalog.ReloadHour, s.cfg.Catalog.ReloadMinute)
	next := getNextTimePoint(now, hour, minute)

	s.reload = taskStatus{
		LastRun:     next.Add(-24 * time.Hour),
		NextRun:     next,
		Description: fmt.Sprintf("产品目录重载 (%02d:%02d)", hour, minute),
	}
	logger.Info("定时任务初始化完成", "task", s.reload.Description, "next_run", next)
}

// 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60 // 默认值
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTask(now)
	}
}

// 检查是否到达重载时间点
func (s *Scheduler) checkTask(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.reload.IsRunning || now.Before(s.reload.NextRun) {
		return
	}

	s.reload.IsRunning = true
	go s.runReload(now)
}

// 执行目录重载并计算下次运行时间
func (s *Scheduler) runReload(now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		s.reload.IsRunning = false
		s.reload.LastRun = now

		hour, minute := validateHourMinute(s.cfg, s.cfg.Catalog.ReloadHour, s.cfg.Catalog.ReloadMinute)
		s.reload.NextRun = getNextTimePoint(now, hour, minute)
	}()

	logger.Info("开始定时重载产品目录")
	services.LoadCatalog(s.cfg)
	logger.Info("定时重载产品目录完成",
		"count", len(services.CatalogProducts()),
		"source", services.CatalogSource())
}
