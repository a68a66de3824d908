package api

import (
	"CricketSync/internal/config"
	"CricketSync/internal/metrics"
	"CricketSync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter 注册全部路由；gin 运行模式由调用方通过 gin.SetMode 设置
func NewRouter(cfg *config.Config, db *gorm.DB, queryService *service.QueryService, m *metrics.Metrics, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), RequestMetrics(m))

	// 注册pprof 方便调试和监测性能问题，仅 debug 模式
	if cfg.Server.Mode == gin.DebugMode {
		pprof.Register(r)
		logger.Info("已注册 /debug/pprof")
	}

	matchHandler := NewMatchHandler(queryService, logger)
	r.GET("/matches", matchHandler.ListMatches)
	r.GET("/teams", matchHandler.ListTeams)
	r.GET("/venues", matchHandler.ListVenues)
	r.GET("/ingestions", matchHandler.ListIngestions)

	healthHandler := NewHealthHandler(db, logger)
	r.GET("/healthz", healthHandler.Healthz)

	if cfg.Metrics.Enabled && m != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}
	return r
}
