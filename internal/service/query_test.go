package service

import (
	"context"
	"testing"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"
	"CricketSync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMatchesEmptyDatesRenderEmpty(t *testing.T) {
	e := newEnv(t)
	raw := indiaAustralia()
	raw.DateEnd = ""
	_, err := e.ingest.Run(context.Background(), &fakeSource{name: model.SourceAPI, raws: []model.RawMatch{raw}})
	require.NoError(t, err)

	views, err := e.query.ListMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "2024-01-15T09:30:00Z", views[0].DateStart)
	assert.Empty(t, views[0].DateEnd)
}

func TestListTeamsAndVenues(t *testing.T) {
	e := newEnv(t)
	_, err := e.ingest.Run(context.Background(), &fakeSource{name: model.SourceAPI, raws: []model.RawMatch{indiaAustralia()}})
	require.NoError(t, err)

	teams, err := e.query.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "India", teams[0].Name)
	assert.Equal(t, "Australia", teams[1].Name)

	venues, err := e.query.ListVenues(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Australia", venues[0].Country)
}

func TestQueryErrorsAreClassified(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, repository.Close(e.db))

	_, err := e.query.ListMatches(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindQuery))
	_, err = e.query.ListTeams(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindQuery))
	_, err = e.query.ListVenues(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindQuery))
	_, err = e.query.ListRuns(context.Background(), 5)
	assert.True(t, apperr.Is(err, apperr.KindQuery))
}
