package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"gemma-chat/cmd/api/trace"
	"gemma-chat/cmd/internal/logger"
)

const maxBodyLog = 1024

// Config 는 아웃바운드 HTTP 클라이언트 설정이다.
// Timeout 이 0 이면 타임아웃 없이 호출자의 컨텍스트로만 제한된다.
type Config struct {
	Timeout time.Duration
}

// loggingRoundTripper 는 추론 엔드포인트 호출마다 span 을 하나 늘려
// X-Request-Id / X-Span-Id 를 싣고, 요청 바디 일부와 결과를 로깅한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	req.Header.Set(trace.HeaderRequestID, requestID)
	req.Header.Set(trace.HeaderSpanID, spanID)

	fields := logger.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if req.Body != nil {
		if b, err := io.ReadAll(req.Body); err == nil {
			fields["body"] = string(b[:min(len(b), maxBodyLog)])
			req.Body = io.NopCloser(bytes.NewReader(b))
		}
	}

	resp, err := l.inner.RoundTrip(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("outbound request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	logger.DebugWithFields("outbound request done", fields)
	return resp, nil
}

// BaseClient 는 하나의 고정 엔드포인트로 요청을 보내는 클라이언트다.
type BaseClient struct {
	HTTPClient *http.Client
	URL        string
}

// NewBaseClient 는 endpoint 로 요청을 보내는 BaseClient 를 만든다.
// httpClient 가 nil 이면 타임아웃 없는 logging 클라이언트를 쓴다.
func NewBaseClient(httpClient *http.Client, endpoint string) *BaseClient {
	if httpClient == nil {
		httpClient = New(Config{})
	}
	return &BaseClient{HTTPClient: httpClient, URL: endpoint}
}

func (c *BaseClient) NewRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, c.URL, body)
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New 는 logging 트랜스포트를 가진 http.Client 를 만든다.
func New(cfg Config) *http.Client {
	return &http.Client{
		Timeout:   max(cfg.Timeout, 0),
		Transport: &loggingRoundTripper{inner: http.DefaultTransport},
	}
}
