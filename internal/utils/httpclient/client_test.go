package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CricketSync/internal/testutil"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipResponseIsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"status":"ok"}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	client := NewHTTPClient(Options{Timeout: 5 * time.Second}, testutil.NewLogger())
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok"}`, string(body))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.True(t, resp.Uncompressed)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewHTTPClient(Options{Timeout: 20 * time.Millisecond}, testutil.NewLogger())
	_, err := client.Get(srv.URL)
	assert.Error(t, err)
}

func TestBadProxyIsIgnored(t *testing.T) {
	client := NewHTTPClient(Options{Timeout: time.Second, Proxy: "://bad"}, testutil.NewLogger())
	tr := client.Transport.(*loggingTransport).next.(*http.Transport)
	assert.Nil(t, tr.Proxy)
}

func TestProxyIsConfigured(t *testing.T) {
	client := NewHTTPClient(Options{Timeout: time.Second, Proxy: "http://127.0.0.1:7890"}, testutil.NewLogger())
	tr := client.Transport.(*loggingTransport).next.(*http.Transport)
	require.NotNil(t, tr.Proxy)

	req := httptest.NewRequest(http.MethodGet, "https://rest.entitysport.com/v2/matches/", nil)
	proxyURL, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7890", proxyURL.Host)
}

func TestRequestLogOmitsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	client := NewHTTPClient(Options{Timeout: time.Second}, logger)

	resp, err := client.Get(srv.URL + "/matches/?token=secret-token")
	require.NoError(t, err)
	_ = resp.Body.Close()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "/matches/", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	for _, v := range entry.Data {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "secret-token")
		}
	}
}
