package interfaces

import (
	"context"

	"CricketSync/internal/model"
)

// MatchSource 比赛数据来源（第三方接口或本地种子文件）
type MatchSource interface {
	Name() string
	// FetchInProgressMatches 拉取一批进行中的比赛；失败返回 KindFetch 或 KindFormat
	FetchInProgressMatches(ctx context.Context) ([]model.RawMatch, error)
}
