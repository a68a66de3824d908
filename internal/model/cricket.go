package model

import (
	"time"

	"gorm.io/datatypes"
)

// Team 球队，name 为自然键；team_id 首次插入时生成
type Team struct {
	ID        uint64 `gorm:"column:team_id;primaryKey;autoIncrement" json:"team_id"`
	Name      string `gorm:"column:name;type:varchar(255);uniqueIndex:teams_name_unique;not null" json:"name"`
	ShortName string `gorm:"column:short_name;type:varchar(50)" json:"short_name"`
	LogoURL   string `gorm:"column:logo_url;type:varchar(255)" json:"logo_url"`
}

// Venue 场馆，name 为自然键
type Venue struct {
	ID       uint64 `gorm:"column:venue_id;primaryKey;autoIncrement" json:"venue_id"`
	Name     string `gorm:"column:name;type:varchar(255);uniqueIndex:venues_name_unique;not null" json:"name"`
	Location string `gorm:"column:location;type:varchar(255)" json:"location"`
	Country  string `gorm:"column:country;type:varchar(255)" json:"country"`
	Timezone string `gorm:"column:timezone;type:varchar(50)" json:"timezone"`
}

// Match 比赛，两支球队与场馆均为外键引用；只插入，不更新
type Match struct {
	ID          uint64     `gorm:"column:match_id;primaryKey;autoIncrement"`
	Title       string     `gorm:"column:title;type:varchar(255)"`
	ShortTitle  string     `gorm:"column:short_title;type:varchar(50)"`
	Subtitle    string     `gorm:"column:subtitle;type:varchar(255)"`
	MatchNumber string     `gorm:"column:match_number;type:varchar(10)"`
	TeamAID     uint64     `gorm:"column:teama_id;not null"`
	TeamBID     uint64     `gorm:"column:teamb_id;not null"`
	DateStart   *time.Time `gorm:"column:date_start;type:timestamp"`
	DateEnd     *time.Time `gorm:"column:date_end;type:timestamp"`
	// 字段名不能映射到 venues 表已有的列（venue_id），否则 gorm 会按 has-one 建立反向外键
	VenueRefID  uint64     `gorm:"column:venue_id;not null"`

	TeamA Team  `gorm:"foreignKey:TeamAID;references:ID"`
	TeamB Team  `gorm:"foreignKey:TeamBID;references:ID"`
	Venue Venue `gorm:"foreignKey:VenueRefID;references:ID"`
}

// 同步来源
const (
	SourceAPI  = "api"
	SourceSeed = "seed"
)

// 同步状态
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// IngestionRun 每次同步的记录，在批量事务之外写入，失败的批次同样留痕
type IngestionRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunUUID    string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null" json:"run_uuid"`
	Source     string         `gorm:"column:source;type:varchar(16);not null" json:"source"`
	Status     string         `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ErrorKind  string         `gorm:"column:error_kind;type:varchar(16)" json:"error_kind,omitempty"`
	Error      string         `gorm:"column:error;type:text" json:"-"` // 内部原因，不对外输出
	Fetched    int            `gorm:"column:fetched;default:0" json:"fetched"`
	Inserted   int            `gorm:"column:inserted;default:0" json:"inserted"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"-"` // 原始 items，便于排查与重放
	StartedAt  time.Time      `gorm:"column:started_at;type:timestamp;not null" json:"started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at;type:timestamp" json:"finished_at,omitempty"`
}

func (Team) TableName() string         { return "teams" }
func (Venue) TableName() string        { return "venues" }
func (Match) TableName() string        { return "matches" }
func (IngestionRun) TableName() string { return "ingestion_runs" }
