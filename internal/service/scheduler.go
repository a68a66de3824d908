package service

import (
	"context"
	"fmt"

	"CricketSync/internal/config"
	"CricketSync/internal/interfaces"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler 按 cron 或固定间隔重复同步；同一时刻最多一次同步在跑
type Scheduler struct {
	sched  gocron.Scheduler
	ingest *IngestService
	source interfaces.MatchSource
	logger *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduled 配置了 cron 或 interval 才需要定时同步
func Scheduled(cfg config.SyncConfig) bool {
	return cfg.Cron != "" || cfg.Interval > 0
}

// NewScheduler cron 优先于 interval；两者都未配置时返回错误
func NewScheduler(cfg config.SyncConfig, ingest *IngestService, source interfaces.MatchSource, logger *logrus.Logger) (*Scheduler, error) {
	var def gocron.JobDefinition
	switch {
	case cfg.Cron != "":
		def = gocron.CronJob(cfg.Cron, false)
	case cfg.Interval > 0:
		def = gocron.DurationJob(cfg.Interval)
	default:
		return nil, fmt.Errorf("未配置 sync.cron 或 sync.interval")
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("创建调度器失败: %w", err)
	}
	s := &Scheduler{
		sched:  sched,
		ingest: ingest,
		source: source,
		logger: logger,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if _, err := sched.NewJob(
		def,
		gocron.NewTask(s.runOnce),
		gocron.WithName("ingest-"+source.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		s.cancel()
		_ = sched.Shutdown()
		return nil, fmt.Errorf("注册同步任务失败: %w", err)
	}
	return s, nil
}

// Start 非阻塞
func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.WithField("source", s.source.Name()).Info("定时同步已启动")
}

// Stop 取消正在进行的同步并等待任务退出
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.sched.Shutdown()
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	// 错误已在 IngestService 中记录，这里不中断调度
	_, _ = s.ingest.Run(s.ctx, s.source)
}
