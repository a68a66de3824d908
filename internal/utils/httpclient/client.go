// Package httpclient 访问第三方接口的 HTTP 客户端
package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Options HTTP客户端参数
type Options struct {
	Timeout time.Duration // 整个请求（含读取响应体）的超时
	Proxy   string        // 代理地址，空则直连
}

// NewHTTPClient 带超时与可选代理的客户端。
// gzip 交给 http.Transport 透明解压：请求不自行设置 Accept-Encoding，响应体拿到的即是解压后的内容
func NewHTTPClient(opts Options, logger *logrus.Logger) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if opts.Proxy != "" {
		if proxyURL, err := url.Parse(opts.Proxy); err != nil || proxyURL.Host == "" {
			logger.WithError(err).WithField("proxy", opts.Proxy).Warn("代理地址解析失败，将不使用代理")
			transport.Proxy = nil
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.WithField("proxy", proxyURL.Host).Info("HTTP客户端已配置代理")
		}
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: &loggingTransport{next: transport, logger: logger},
	}
}

// loggingTransport 以 debug 级别记录每次请求；只记录 host 与 path，query 中的 token 不落日志
type loggingTransport struct {
	next   http.RoundTripper
	logger *logrus.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	entry := t.logger.WithFields(logrus.Fields{
		"method":  req.Method,
		"host":    req.URL.Host,
		"path":    req.URL.Path,
		"latency": time.Since(start).String(),
	})
	if err != nil {
		entry.Debug("第三方请求失败")
		return nil, err
	}
	entry.WithFields(logrus.Fields{
		"status":       resp.StatusCode,
		"uncompressed": resp.Uncompressed,
	}).Debug("第三方请求完成")
	return resp, nil
}
