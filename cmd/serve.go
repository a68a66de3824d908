package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CricketSync/internal/adapter"
	"CricketSync/internal/api"
	"CricketSync/internal/metrics"
	"CricketSync/internal/model"
	"CricketSync/internal/repository"
	"CricketSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	httpTimeout     = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务（启动时同步一次，可选定时同步）",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, logger := a.cfg, a.logger

	m := metrics.New()
	ingest := a.ingestService(m)

	// 1. 种子文件（可选），失败只记录
	if cfg.Seed.LoadOnStart {
		if seedSrc, err := adapter.NewSource(model.SourceSeed, cfg, logger); err != nil {
			logger.WithError(err).Warn("创建种子来源失败")
		} else {
			_, _ = ingest.Run(ctx, seedSrc)
		}
	}

	// 2. 启动时同步一次；失败不影响 HTTP 服务
	apiSrc, err := adapter.NewSource(model.SourceAPI, cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Sync.OnStart {
		_, _ = ingest.Run(ctx, apiSrc)
	}

	// 3. 定时同步（可选）
	var sched *service.Scheduler
	if service.Scheduled(cfg.Sync) {
		if sched, err = service.NewScheduler(cfg.Sync, ingest, apiSrc, logger); err != nil {
			return err
		}
		sched.Start()
	}

	// 4. HTTP 服务
	gin.SetMode(cfg.Server.Mode)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)
	queryService := service.NewQueryService(
		repository.NewQueryRepository(a.db),
		repository.NewRunRepository(a.db),
		logger,
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(cfg, a.db, queryService, m, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       httpTimeout,
		WriteTimeout:      httpTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("开始关闭服务…")
		if sched != nil {
			if err := sched.Stop(); err != nil {
				logger.WithError(err).Warn("停止定时同步失败")
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("服务异常退出")
		return err
	}
	logger.Info("服务已关闭")
	return nil
}
