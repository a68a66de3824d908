package seed

import (
	"bytes"
	"context"
	"os"

	"CricketSync/internal/adapter"
	"CricketSync/internal/apperr"
	"CricketSync/internal/config"
	"CricketSync/internal/interfaces"
	"CricketSync/internal/model"

	"github.com/sirupsen/logrus"
)

const opFetch = "seed.FetchInProgressMatches"

func init() {
	adapter.Register(model.SourceSeed, func(cfg *config.Config, logger *logrus.Logger) interfaces.MatchSource {
		return NewSource(cfg.Seed.Path, logger)
	})
}

// Source 本地种子文件，格式与接口响应一致，也接受直接的比赛数组
type Source struct {
	path   string
	logger *logrus.Logger
}

func NewSource(path string, logger *logrus.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) Name() string { return model.SourceSeed }

// FetchInProgressMatches 每次调用都重新读取文件，文件可在进程运行期间替换
func (s *Source) FetchInProgressMatches(ctx context.Context) ([]model.RawMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.New(apperr.KindFetch, opFetch, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "读取种子文件失败: %w", err)
	}

	var raws []model.RawMatch
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		raws, err = adapter.DecodeItems(opFetch, trimmed)
	} else {
		raws, err = adapter.DecodeEnvelope(opFetch, trimmed)
	}
	if err != nil {
		return nil, err
	}
	s.logger.WithField("path", s.path).Infof("种子文件读取完成，共%d条比赛", len(raws))
	return raws, nil
}
