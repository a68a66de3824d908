package repository

import (
	"context"

	"CricketSync/internal/model"

	"gorm.io/gorm"
)

// RunRepository 同步记录，独立于比赛入库事务
type RunRepository interface {
	CreateRun(ctx context.Context, run *model.IngestionRun) error
	FinishRun(ctx context.Context, run *model.IngestionRun) error
	// ListRecentRuns 按开始时间倒序
	ListRecentRuns(ctx context.Context, limit int) ([]*model.IngestionRun, error)
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) CreateRun(ctx context.Context, run *model.IngestionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) FinishRun(ctx context.Context, run *model.IngestionRun) error {
	return r.db.WithContext(ctx).Model(run).
		Select("status", "error_kind", "error", "fetched", "inserted", "payload", "finished_at").
		Updates(run).Error
}

func (r *runRepository) ListRecentRuns(ctx context.Context, limit int) ([]*model.IngestionRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var list []*model.IngestionRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
