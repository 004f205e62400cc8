package trace

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"
)

type ctxKey struct{}

// spans 는 inbound 요청 하나의 추적 상태다.
// inbound 는 span 0, 추론 엔드포인트 호출마다 1,2,3,... 으로 늘어난다.
type spans struct {
	requestID string
	seq       atomic.Int64
}

// GenerateID 는 하이픈 없는 랜덤 UUID 를 반환한다.
func GenerateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// WithRequestID 는 requestID 를 span 0 으로 실은 컨텍스트를 반환한다.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, &spans{requestID: requestID})
}

func fromContext(ctx context.Context) *spans {
	s, _ := ctx.Value(ctxKey{}).(*spans)
	return s
}

func RequestIDFromContext(ctx context.Context) string {
	if s := fromContext(ctx); s != nil {
		return s.requestID
	}
	return ""
}

// CurrentSpanID 는 마지막으로 발급된 span 을 돌려준다. 값을 늘리지 않는다.
func CurrentSpanID(ctx context.Context) string {
	if s := fromContext(ctx); s != nil {
		return strconv.FormatInt(s.seq.Load(), 10)
	}
	return "0"
}

// NextSpanID 는 다음 span 을 발급하고 (requestID, spanID) 를 반환한다.
// 추적 정보가 없는 컨텍스트에서는 새 requestID 와 span 1 을 쓴다.
func NextSpanID(ctx context.Context) (requestID, spanID string) {
	s := fromContext(ctx)
	if s == nil {
		return GenerateID(), "1"
	}
	return s.requestID, strconv.FormatInt(s.seq.Add(1), 10)
}
