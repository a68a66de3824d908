package adapter

import (
	"bytes"
	"encoding/json"

	"CricketSync/internal/apperr"
	"CricketSync/internal/model"
)

// DecodeEnvelope 解析 {status, response:{items:[...]}} 形式的响应体。
// 缺少 response / items 或无法解析返回 KindFetch；items 不是数组返回 KindFormat
func DecodeEnvelope(op string, body []byte) ([]model.RawMatch, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, apperr.Errorf(apperr.KindFetch, op, "响应体为空")
	}

	var env model.EntitySportEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, op, "解析响应失败: %w", err)
	}
	if env.Status != "" && env.Status != "ok" {
		return nil, apperr.Errorf(apperr.KindFetch, op, "接口返回状态 %s: %s", env.Status, truncate(env.Response, 200))
	}
	if isAbsent(env.Response) {
		return nil, apperr.Errorf(apperr.KindFetch, op, "响应缺少 response")
	}

	var resp model.EntitySportResponse
	if err := json.Unmarshal(env.Response, &resp); err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, op, "解析 response 失败: %w", err)
	}
	if isAbsent(resp.Items) {
		return nil, apperr.Errorf(apperr.KindFetch, op, "响应缺少 response.items")
	}
	return DecodeItems(op, resp.Items)
}

// DecodeItems 解析比赛数组；不是数组返回 KindFormat，元素字段类型不符返回 KindFetch
func DecodeItems(op string, items []byte) ([]model.RawMatch, error) {
	items = bytes.TrimSpace(items)
	if len(items) == 0 || items[0] != '[' {
		return nil, apperr.Errorf(apperr.KindFormat, op, "items 不是数组: %s", truncate(items, 50))
	}
	var raws []model.RawMatch
	if err := json.Unmarshal(items, &raws); err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, op, "解析 items 失败: %w", err)
	}
	return raws, nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
