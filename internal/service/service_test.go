package service

import (
	"context"
	"sync/atomic"
	"testing"

	"CricketSync/internal/metrics"
	"CricketSync/internal/model"
	"CricketSync/internal/repository"
	"CricketSync/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSource 返回预置数据；block 为 true 时阻塞到 ctx 结束
type fakeSource struct {
	name  string
	raws  []model.RawMatch
	err   error
	block bool
	calls atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchInProgressMatches(ctx context.Context) ([]model.RawMatch, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.raws, f.err
}

type env struct {
	db      *gorm.DB
	ingest  *IngestService
	query   *QueryService
	metrics *metrics.Metrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	logger := testutil.NewLogger()
	require.NoError(t, repository.NewSchemaManager(db, logger).EnsureSchema(context.Background()))

	m := metrics.New()
	runRepo := repository.NewRunRepository(db)
	return &env{
		db:      db,
		ingest:  NewIngestService(repository.NewMatchRepository(db), runRepo, m, logger, 0),
		query:   NewQueryService(repository.NewQueryRepository(db), runRepo, logger),
		metrics: m,
	}
}

func indiaAustralia() model.RawMatch {
	return model.RawMatch{
		Title:       "India vs Australia",
		ShortTitle:  "IND vs AUS",
		Subtitle:    "2nd ODI",
		MatchNumber: "2",
		DateStart:   "2024-01-15 09:30:00",
		DateEnd:     "2024-01-15 18:00:00",
		TeamA:       model.RawTeam{Name: "India", ShortName: "IND", LogoURL: "https://img/india.png"},
		TeamB:       model.RawTeam{Name: "Australia", ShortName: "AUS", LogoURL: "https://img/aus.png"},
		Venue:       model.RawVenue{Name: "MCG", Location: "Melbourne", Country: "Australia", Timezone: "+11:00"},
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
