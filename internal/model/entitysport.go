package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ========== EntitySport 接口原始结构（GET /matches/?status=3） ==========

// EntitySportEnvelope 接口根响应；出错时 response 可能是一段字符串，因此保留原始字节
type EntitySportEnvelope struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// EntitySportResponse response 节点；Items 保留原始字节，由调用方判断是否为数组
type EntitySportResponse struct {
	Items json.RawMessage `json:"items"`
}

// RawMatch 单场比赛原始数据：嵌套的双方球队、场馆，加上比赛本身的平铺字段
type RawMatch struct {
	Title       string     `json:"title"`
	ShortTitle  string     `json:"short_title"`
	Subtitle    string     `json:"subtitle"`
	MatchNumber FlexString `json:"match_number"`
	DateStart   string     `json:"date_start"`
	DateEnd     string     `json:"date_end"`
	TeamA       RawTeam    `json:"teama"`
	TeamB       RawTeam    `json:"teamb"`
	Venue       RawVenue   `json:"venue"`
}

// RawTeam 原始球队
type RawTeam struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url"`
}

// RawVenue 原始场馆
type RawVenue struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// FlexString 兼容字符串与数字两种写法（match_number 在不同赛事中类型不一致）
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }
