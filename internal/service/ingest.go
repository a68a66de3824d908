package service

import (
	"context"
	"encoding/json"
	"time"

	"CricketSync/internal/apperr"
	"CricketSync/internal/interfaces"
	"CricketSync/internal/metrics"
	"CricketSync/internal/model"
	"CricketSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// finishRunTimeout 同步超时后仍需写回同步记录，使用独立的短超时
const finishRunTimeout = 5 * time.Second

// IngestService 拉取一批进行中的比赛并整批入库，每次调用留下一条 ingestion_runs 记录
type IngestService struct {
	matchRepo repository.MatchRepository
	runRepo   repository.RunRepository
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	timeout   time.Duration
}

// NewIngestService timeout 为拉取加入库的总超时，<=0 表示只受调用方 ctx 约束
func NewIngestService(matchRepo repository.MatchRepository, runRepo repository.RunRepository, m *metrics.Metrics, logger *logrus.Logger, timeout time.Duration) *IngestService {
	return &IngestService{
		matchRepo: matchRepo,
		runRepo:   runRepo,
		metrics:   m,
		logger:    logger,
		timeout:   timeout,
	}
}

// Run 从 src 拉取并入库，返回提交的比赛数。失败时存储保持不变，错误原样返回给调用方
func (s *IngestService) Run(ctx context.Context, src interfaces.MatchSource) (int, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	run := &model.IngestionRun{
		RunUUID:   uuid.NewString(),
		Source:    src.Name(),
		Status:    model.RunStatusRunning,
		StartedAt: start.UTC(),
	}
	log := s.logger.WithFields(logrus.Fields{
		"source":   run.Source,
		"run_uuid": run.RunUUID,
	})
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		// 同步记录写失败不影响本次同步
		log.WithError(err).Warn("写入同步记录失败")
		run = nil
	}

	inserted, err := s.ingest(ctx, src, run, log)
	s.finish(ctx, src.Name(), run, inserted, err, start, log)
	return inserted, err
}

func (s *IngestService) ingest(ctx context.Context, src interfaces.MatchSource, run *model.IngestionRun, log *logrus.Entry) (int, error) {
	// 1. 拉取
	raws, err := src.FetchInProgressMatches(ctx)
	if err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.New(apperr.KindFetch, "FetchInProgressMatches", err)
		}
		return 0, err
	}
	if run != nil {
		run.Fetched = len(raws)
		if payload, e := json.Marshal(raws); e == nil {
			run.Payload = datatypes.JSON(payload)
		}
	}
	if len(raws) == 0 {
		log.Warn("未拉取到进行中的比赛")
		return 0, nil
	}

	// 2. 整批入库
	return s.matchRepo.IngestMatches(ctx, raws)
}

func (s *IngestService) finish(ctx context.Context, source string, run *model.IngestionRun, inserted int, err error, start time.Time, log *logrus.Entry) {
	elapsed := time.Since(start)
	status := model.RunStatusSucceeded
	if err != nil {
		status = model.RunStatusFailed
		kind := apperr.KindOf(err)
		s.metrics.IncError(string(kind))
		entry := log.WithError(err).WithField("kind", kind)
		switch kind {
		case apperr.KindFetch:
			entry.Error("拉取比赛失败")
		case apperr.KindFormat:
			entry.Error("比赛数据格式错误，items 不是数组")
		case apperr.KindIngestion:
			entry.Error("比赛入库失败，整批已回滚")
		default:
			entry.Error("同步失败")
		}
	} else {
		log.WithFields(logrus.Fields{
			"inserted": inserted,
			"elapsed":  elapsed.String(),
		}).Info("同步完成")
	}
	s.metrics.ObserveIngest(source, status, inserted, elapsed)

	if run == nil {
		return
	}
	finished := time.Now().UTC()
	run.Status = status
	run.Inserted = inserted
	run.FinishedAt = &finished
	if err != nil {
		run.ErrorKind = string(apperr.KindOf(err))
		run.Error = err.Error()
	}
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishRunTimeout)
	defer cancel()
	if e := s.runRepo.FinishRun(fctx, run); e != nil {
		log.WithError(e).Warn("更新同步记录失败")
	}
}
