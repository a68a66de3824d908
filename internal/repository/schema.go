package repository

import (
	"context"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const legacyVenueFK = "fk_matches_venue"

// SchemaManager 负责 teams/venues/matches 三张表及其约束，每次启动都可安全调用
type SchemaManager struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewSchemaManager(db *gorm.DB, logger *logrus.Logger) *SchemaManager {
	return &SchemaManager{db: db, logger: logger}
}

// EnsureSchema 表不存在则创建（按外键依赖顺序迁移）；失败返回 KindDDL，调用方不得继续同步
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(
		&model.Team{},
		&model.Venue{},
		&model.Match{},
		&model.IngestionRun{},
	); err != nil {
		return apperr.New(apperr.KindDDL, "EnsureSchema", err)
	}

	// 旧版本把场馆外键建在了 venues 上（指向 matches），AutoMigrate 不会删除已有约束
	migrator := m.db.WithContext(ctx).Migrator()
	if migrator.HasConstraint(&model.Venue{}, legacyVenueFK) {
		if err := migrator.DropConstraint(&model.Venue{}, legacyVenueFK); err != nil {
			return apperr.Errorf(apperr.KindDDL, "EnsureSchema", "删除 venues.%s 失败: %w", legacyVenueFK, err)
		}
		// SQLite 删除约束需重建表，唯一索引随旧表一起删除，这里补回
		if err := migrator.AutoMigrate(&model.Venue{}); err != nil {
			return apperr.New(apperr.KindDDL, "EnsureSchema", err)
		}
		m.logger.Warnf("已删除错误方向的外键 venues.%s", legacyVenueFK)
	}
	m.logger.Info("数据库表结构检查完成（不存在则已创建）")
	return nil
}
