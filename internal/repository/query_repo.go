package repository

import (
	"context"

	"CricketSync/internal/model"

	"gorm.io/gorm"
)

// QueryRepository 只读查询，每次调用从连接池取连接、用完归还
type QueryRepository interface {
	// ListMatches 比赛内连接双方球队与场馆
	ListMatches(ctx context.Context) ([]*model.Match, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	ListVenues(ctx context.Context) ([]*model.Venue, error)
}

type queryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) ListMatches(ctx context.Context) ([]*model.Match, error) {
	var list []*model.Match
	if err := r.db.WithContext(ctx).
		InnerJoins("TeamA").
		InnerJoins("TeamB").
		InnerJoins("Venue").
		Order("matches.match_id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *queryRepository) ListTeams(ctx context.Context) ([]*model.Team, error) {
	var list []*model.Team
	if err := r.db.WithContext(ctx).Order("team_id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *queryRepository) ListVenues(ctx context.Context) ([]*model.Venue, error) {
	var list []*model.Venue
	if err := r.db.WithContext(ctx).Order("venue_id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
