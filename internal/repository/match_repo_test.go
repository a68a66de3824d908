package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestMatchesResolvesTeamsByName(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	first := rawMatch(1, "India", "Australia", "MCG")
	second := rawMatch(2, "India", "England", "SCG")
	second.TeamA.ShortName = "BHARAT"

	n, err := repo.IngestMatches(ctx, []model.RawMatch{first, second})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var india []model.Team
	require.NoError(t, db.Where("name = ?", "India").Find(&india).Error)
	require.Len(t, india, 1)
	assert.Equal(t, "Ind", india[0].ShortName, "冲突时只回写 name，保留首次写入的属性")

	var matches []model.Match
	require.NoError(t, db.Order("match_id").Find(&matches).Error)
	require.Len(t, matches, 2)
	assert.Equal(t, matches[0].TeamAID, matches[1].TeamAID)
	assert.Equal(t, int64(3), count(t, db, &model.Team{}))
	assert.Equal(t, int64(2), count(t, db, &model.Venue{}))
}

func TestIngestMatchesAcrossBatchesKeepsIDs(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	_, err := repo.IngestMatches(ctx, []model.RawMatch{rawMatch(1, "India", "Australia", "MCG")})
	require.NoError(t, err)
	var before model.Venue
	require.NoError(t, db.Where("name = ?", "MCG").First(&before).Error)

	again := rawMatch(2, "Australia", "India", "MCG")
	again.Venue.Location = "Somewhere else"
	_, err = repo.IngestMatches(ctx, []model.RawMatch{again})
	require.NoError(t, err)

	var after model.Venue
	require.NoError(t, db.Where("name = ?", "MCG").First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "MCG city", after.Location)
	assert.Equal(t, int64(1), count(t, db, &model.Venue{}))
}

func TestIngestMatchesRollsBackWholeBatch(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	_, err := repo.IngestMatches(ctx, []model.RawMatch{rawMatch(0, "India", "Australia", "MCG")})
	require.NoError(t, err)

	batch := []model.RawMatch{
		rawMatch(1, "India", "Pakistan", "Eden Gardens"),
		rawMatch(2, "England", "Australia", "Lords"),
		rawMatch(3, "Nepal", "Oman", "Kirtipur"),
		rawMatch(4, "Ireland", "Scotland", "Malahide"),
		rawMatch(5, "Kenya", "Uganda", "Nairobi Gymkhana"),
	}
	batch[2].TeamB.Name = "" // 第三条缺少自然键，违反 NOT NULL

	n, err := repo.IngestMatches(ctx, batch)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, apperr.Is(err, apperr.KindIngestion))
	assert.Contains(t, err.Error(), "第3条")

	assert.Equal(t, int64(1), count(t, db, &model.Match{}), "失败批次不留下任何比赛")
	assert.Equal(t, int64(2), count(t, db, &model.Team{}), "失败批次不留下新球队")
	assert.Equal(t, int64(1), count(t, db, &model.Venue{}), "失败批次不留下新场馆")
}

func TestIngestMatchesBadDateRollsBack(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)

	bad := rawMatch(2, "England", "Australia", "Lords")
	bad.DateStart = "next tuesday"
	_, err := repo.IngestMatches(context.Background(), []model.RawMatch{rawMatch(1, "India", "Pakistan", "Eden Gardens"), bad})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindIngestion))
	assert.Equal(t, int64(0), count(t, db, &model.Match{}))
	assert.Equal(t, int64(0), count(t, db, &model.Team{}))
}

func TestIngestMatchesDuplicatesOnRepeat(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)
	batch := []model.RawMatch{rawMatch(1, "India", "Australia", "MCG")}

	_, err := repo.IngestMatches(context.Background(), batch)
	require.NoError(t, err)
	_, err = repo.IngestMatches(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, int64(2), count(t, db, &model.Match{}), "比赛没有自然键，重复同步会产生重复行")
	assert.Equal(t, int64(2), count(t, db, &model.Team{}))
}

func TestIngestMatchesEmptyBatch(t *testing.T) {
	db := newMigratedDB(t)
	n, err := NewMatchRepository(db).IngestMatches(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIngestMatchesCanceledContext(t *testing.T) {
	db := newMigratedDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMatchRepository(db).IngestMatches(ctx, []model.RawMatch{rawMatch(1, "India", "Australia", "MCG")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindIngestion))
	assert.Equal(t, int64(0), count(t, db, &model.Match{}))
}

func TestConcurrentReadsNeverSeeDanglingReferences(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewMatchRepository(db)
	query := NewQueryRepository(db)
	ctx := context.Background()

	batch := make([]model.RawMatch, 0, 20)
	for i := 0; i < 20; i++ {
		batch = append(batch, rawMatch(i, "India", "Australia", "MCG"))
		batch[i].TeamB.Name = "Opponent " + string(rune('A'+i))
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			list, err := query.ListMatches(ctx)
			if err != nil {
				continue
			}
			for _, m := range list {
				assert.NotZero(t, m.TeamA.ID)
				assert.NotZero(t, m.TeamB.ID)
				assert.NotZero(t, m.Venue.ID)
			}
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < 3; i++ {
		_, err := repo.IngestMatches(ctx, batch)
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()

	var orphans int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM matches m
		LEFT JOIN teams a ON a.team_id = m.teama_id
		LEFT JOIN teams b ON b.team_id = m.teamb_id
		LEFT JOIN venues v ON v.venue_id = m.venue_id
		WHERE a.team_id IS NULL OR b.team_id IS NULL OR v.venue_id IS NULL`).Scan(&orphans).Error)
	assert.Zero(t, orphans)
	assert.Equal(t, int64(60), count(t, db, &model.Match{}))
}

func TestParseMatchTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{in: "2024-01-15 09:30:00", want: "2024-01-15T09:30:00Z"},
		{in: "2024-01-15T09:30:00+05:30", want: "2024-01-15T04:00:00Z"},
		{in: "2024-01-15", want: "2024-01-15T00:00:00Z"},
		{in: "  ", wantNil: true},
		{in: "15/01/2024", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseMatchTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		if tt.wantNil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.Equal(t, tt.want, got.Format(time.RFC3339))
	}
}
