package main

import (
	"context"
	"fmt"

	"CricketSync/internal/config"
	"CricketSync/internal/logging"
	"CricketSync/internal/metrics"
	"CricketSync/internal/repository"
	"CricketSync/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// configPath --config 参数，为空时读取 config/config.yaml
var configPath string

var rootCmd = &cobra.Command{
	Use:   "cricketsync",
	Short: "CricketSync - 板球比赛同步服务",
	Long: `CricketSync 从 EntitySport 接口（或本地种子文件）拉取进行中的板球比赛，
按名称归一球队与场馆后整批写入 PostgreSQL，并通过 HTTP 提供只读查询。`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认 config/config.yaml）")
}

// app 各子命令共用的依赖
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB
}

// bootstrap 加载配置、初始化日志、连接数据库并确保表结构；建表失败直接返回，不做任何同步
func bootstrap(ctx context.Context) (*app, error) {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 2. 初始化日志
	logger := logging.New(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 初始化 PostgreSQL 连接（库不存在则先创建再连）
	db, err := repository.Open(cfg.Database, cfg.Log, logger)
	if err != nil {
		return nil, err
	}

	// 4. 库表不存在则自动创建
	if err := repository.NewSchemaManager(db, logger).EnsureSchema(ctx); err != nil {
		logger.WithError(err).Error("数据库表结构迁移失败")
		_ = repository.Close(db)
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if err := repository.Close(a.db); err != nil {
		a.logger.WithError(err).Warn("关闭数据库连接失败")
	}
}

func (a *app) ingestService(m *metrics.Metrics) *service.IngestService {
	return service.NewIngestService(
		repository.NewMatchRepository(a.db),
		repository.NewRunRepository(a.db),
		m,
		a.logger,
		a.cfg.Sync.IngestTimeout,
	)
}
