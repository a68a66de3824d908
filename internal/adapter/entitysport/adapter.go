package entitysport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CricketSync/internal/adapter"
	"CricketSync/internal/apperr"
	"CricketSync/internal/config"
	"CricketSync/internal/interfaces"
	"CricketSync/internal/model"
	"CricketSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const (
	opFetch = "entitysport.FetchInProgressMatches"
	// maxBodyBytes 单页响应上限，防止异常响应占满内存
	maxBodyBytes = 32 << 20
)

func init() {
	adapter.Register(model.SourceAPI, func(cfg *config.Config, logger *logrus.Logger) interfaces.MatchSource {
		return NewAdapter(&cfg.Source, logger)
	})
}

// Adapter EntitySport 比赛列表接口
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAdapter(cfg *config.SourceConfig, logger *logrus.Logger) *Adapter {
	return &Adapter{
		cfg: cfg,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Proxy:   cfg.Proxy,
		}, logger),
		logger: logger,
	}
}

func (a *Adapter) Name() string { return model.SourceAPI }

// FetchInProgressMatches 拉取一页进行中的比赛，不做重试
func (a *Adapter) FetchInProgressMatches(ctx context.Context) ([]model.RawMatch, error) {
	matchesURL, err := a.matchesURL()
	if err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "构建请求地址失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, matchesURL, nil)
	if err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "构建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "获取EntitySport比赛失败: %w", redact(err, a.cfg.Token))
	}
	// 确保响应体关闭，并处理关闭时的错误
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭EntitySport响应体失败: %v", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "读取响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Errorf(apperr.KindFetch, opFetch, "HTTP %d", resp.StatusCode)
	}

	raws, err := adapter.DecodeEnvelope(opFetch, body)
	if err != nil {
		return nil, err
	}
	a.logger.Infof("成功获取EntitySport进行中比赛共%d条", len(raws))
	return raws, nil
}

func (a *Adapter) matchesURL() (string, error) {
	u, err := url.Parse(strings.TrimRight(a.cfg.BaseURL, "/") + "/matches/")
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base_url 非法: %q", a.cfg.BaseURL)
	}
	q := u.Query()
	q.Set("status", strconv.Itoa(a.cfg.Status))
	q.Set("token", a.cfg.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redact 传输错误里带有完整 URL，去掉 token 后再向上返回；Unwrap 保留原错误链（如 context.DeadlineExceeded）
func redact(err error, token string) error {
	if token == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(token), "***")
	return &redactedError{msg: strings.ReplaceAll(msg, token, "***"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
