package service

import (
	"context"
	"time"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"
	"CricketSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// MatchView 比赛对外视图：双方球队与场馆内嵌，时间统一为 RFC3339（UTC）
type MatchView struct {
	MatchID     uint64    `json:"match_id"`
	Title       string    `json:"title"`
	ShortTitle  string    `json:"short_title"`
	Subtitle    string    `json:"subtitle"`
	MatchNumber string    `json:"match_number"`
	TeamA       TeamView  `json:"teama"`
	TeamB       TeamView  `json:"teamb"`
	DateStart   string    `json:"date_start"`
	DateEnd     string    `json:"date_end"`
	Venue       VenueView `json:"venue"`
}

type TeamView struct {
	TeamID    uint64 `json:"team_id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url"`
}

type VenueView struct {
	VenueID  uint64 `json:"venue_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// QueryService 读接口；数据库错误统一归为 KindQuery
type QueryService struct {
	queryRepo repository.QueryRepository
	runRepo   repository.RunRepository
	logger    *logrus.Logger
}

func NewQueryService(queryRepo repository.QueryRepository, runRepo repository.RunRepository, logger *logrus.Logger) *QueryService {
	return &QueryService{
		queryRepo: queryRepo,
		runRepo:   runRepo,
		logger:    logger,
	}
}

func (s *QueryService) ListMatches(ctx context.Context) ([]MatchView, error) {
	list, err := s.queryRepo.ListMatches(ctx)
	if err != nil {
		return nil, apperr.New(apperr.KindQuery, "ListMatches", err)
	}
	views := make([]MatchView, 0, len(list))
	for _, m := range list {
		views = append(views, toMatchView(m))
	}
	return views, nil
}

func (s *QueryService) ListTeams(ctx context.Context) ([]*model.Team, error) {
	list, err := s.queryRepo.ListTeams(ctx)
	if err != nil {
		return nil, apperr.New(apperr.KindQuery, "ListTeams", err)
	}
	return list, nil
}

func (s *QueryService) ListVenues(ctx context.Context) ([]*model.Venue, error) {
	list, err := s.queryRepo.ListVenues(ctx)
	if err != nil {
		return nil, apperr.New(apperr.KindQuery, "ListVenues", err)
	}
	return list, nil
}

// ListRuns 最近的同步记录，最新在前
func (s *QueryService) ListRuns(ctx context.Context, limit int) ([]*model.IngestionRun, error) {
	list, err := s.runRepo.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, apperr.New(apperr.KindQuery, "ListRuns", err)
	}
	return list, nil
}

func toMatchView(m *model.Match) MatchView {
	return MatchView{
		MatchID:     m.ID,
		Title:       m.Title,
		ShortTitle:  m.ShortTitle,
		Subtitle:    m.Subtitle,
		MatchNumber: m.MatchNumber,
		TeamA:       toTeamView(m.TeamA),
		TeamB:       toTeamView(m.TeamB),
		DateStart:   formatTime(m.DateStart),
		DateEnd:     formatTime(m.DateEnd),
		Venue: VenueView{
			VenueID:  m.Venue.ID,
			Name:     m.Venue.Name,
			Location: m.Venue.Location,
			Country:  m.Venue.Country,
			Timezone: m.Venue.Timezone,
		},
	}
}

func toTeamView(t model.Team) TeamView {
	return TeamView{
		TeamID:    t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		LogoURL:   t.LogoURL,
	}
}

// formatTime 空值输出空串
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
