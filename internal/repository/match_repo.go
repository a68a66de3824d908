package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 按自然键 name 插入；冲突时只把 name 写回自身，保留已有属性并取回已存在的主键
const (
	upsertTeamSQL = `INSERT INTO teams (name, short_name, logo_url) VALUES (?, ?, ?) ` +
		`ON CONFLICT (name) DO UPDATE SET name = excluded.name RETURNING team_id`
	upsertVenueSQL = `INSERT INTO venues (name, location, country, timezone) VALUES (?, ?, ?, ?) ` +
		`ON CONFLICT (name) DO UPDATE SET name = excluded.name RETURNING venue_id`
)

// matchTimeLayouts 接口 date_start/date_end 可能出现的格式，均按 UTC 解析
var matchTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// MatchRepository 比赛入库
type MatchRepository interface {
	// IngestMatches 一个事务内按顺序写入整批比赛，任一条失败整批回滚，返回插入的比赛数
	IngestMatches(ctx context.Context, raws []model.RawMatch) (int, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) IngestMatches(ctx context.Context, raws []model.RawMatch) (int, error) {
	if len(raws) == 0 {
		return 0, nil
	}

	// 开启事务：整批占用同一个连接，提交或回滚后归还连接池
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, apperr.Errorf(apperr.KindIngestion, "IngestMatches", "开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	for i := range raws {
		if err := ingestOne(tx, &raws[i]); err != nil {
			tx.Rollback()
			return 0, apperr.Errorf(apperr.KindIngestion, "IngestMatches",
				"第%d条比赛入库失败, title: %s: %w", i+1, raws[i].Title, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, apperr.Errorf(apperr.KindIngestion, "IngestMatches", "提交事务失败: %w", err)
	}
	return len(raws), nil
}

// ingestOne 先解析两支球队与场馆的主键，再插入比赛，保证外键在插入前已存在
func ingestOne(tx *gorm.DB, raw *model.RawMatch) error {
	teamAID, err := upsertTeam(tx, raw.TeamA)
	if err != nil {
		return fmt.Errorf("upsert teama: %w", err)
	}
	teamBID, err := upsertTeam(tx, raw.TeamB)
	if err != nil {
		return fmt.Errorf("upsert teamb: %w", err)
	}
	venueID, err := upsertVenue(tx, raw.Venue)
	if err != nil {
		return fmt.Errorf("upsert venue: %w", err)
	}

	dateStart, err := parseMatchTime(raw.DateStart)
	if err != nil {
		return fmt.Errorf("date_start: %w", err)
	}
	dateEnd, err := parseMatchTime(raw.DateEnd)
	if err != nil {
		return fmt.Errorf("date_end: %w", err)
	}

	match := &model.Match{
		Title:       raw.Title,
		ShortTitle:  raw.ShortTitle,
		Subtitle:    raw.Subtitle,
		MatchNumber: raw.MatchNumber.String(),
		TeamAID:     teamAID,
		TeamBID:     teamBID,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
		VenueRefID:  venueID,
	}
	if err := tx.Omit(clause.Associations).Create(match).Error; err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func upsertTeam(tx *gorm.DB, t model.RawTeam) (uint64, error) {
	var id uint64
	res := tx.Raw(upsertTeamSQL, nullable(t.Name), nullable(t.ShortName), nullable(t.LogoURL)).Scan(&id)
	if res.Error != nil {
		return 0, res.Error
	}
	if id == 0 {
		return 0, fmt.Errorf("球队 %q 未返回 team_id", t.Name)
	}
	return id, nil
}

func upsertVenue(tx *gorm.DB, v model.RawVenue) (uint64, error) {
	var id uint64
	res := tx.Raw(upsertVenueSQL, nullable(v.Name), nullable(v.Location), nullable(v.Country), nullable(v.Timezone)).Scan(&id)
	if res.Error != nil {
		return 0, res.Error
	}
	if id == 0 {
		return 0, fmt.Errorf("场馆 %q 未返回 venue_id", v.Name)
	}
	return id, nil
}

// nullable 空串写为 NULL：缺失的自然键会触发 NOT NULL 约束而不是落一条空名记录
func nullable(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// parseMatchTime 空串视为未知时间（NULL）；无法解析时报错并导致整批回滚
func parseMatchTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range matchTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("无法解析时间: %q", s)
}
