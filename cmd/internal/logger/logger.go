package logger

import (
	"maps"
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

const (
	defaultLevel   = "info"
	envServiceName = "SERVICE_NAME"
)

// Fields 는 구조화 로그 필드다.
type Fields map[string]any

// Log 는 전역 로거다. Init 전에는 info 레벨로 동작한다.
var Log = NewLogger(defaultLevel)

// Init 은 전역 로거를 level 로 교체한다. 비어 있으면 info 를 쓴다.
func Init(level string) {
	Log = NewLogger(level)
}

// NewLogger 는 level 이상만 출력하는 JSON 콘솔 로거를 만든다.
// 출력 키는 datetime/level/message 와 Fields 뿐이다.
func NewLogger(level string) *slog.Logger {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = defaultLevel
	}
	threshold := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= threshold {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{slog.FieldKeyDatetime, slog.FieldKeyLevel, slog.FieldKeyMessage}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))

	return slog.NewWithHandlers(h)
}

func DebugWithFields(msg string, fields Fields) { logAt(slog.DebugLevel, msg, fields) }
func InfoWithFields(msg string, fields Fields)  { logAt(slog.InfoLevel, msg, fields) }
func WarnWithFields(msg string, fields Fields)  { logAt(slog.WarnLevel, msg, fields) }
func ErrorWithFields(msg string, fields Fields) { logAt(slog.ErrorLevel, msg, fields) }

func logAt(level slog.Level, msg string, fields Fields) {
	r := Log.WithFields(slog.M(withServiceName(fields)))
	switch level {
	case slog.DebugLevel:
		r.Debug(msg)
	case slog.WarnLevel:
		r.Warn(msg)
	case slog.ErrorLevel:
		r.Error(msg)
	default:
		r.Info(msg)
	}
}

// withServiceName 은 SERVICE_NAME 이 있으면 service_name 필드를 더한 사본을 돌려준다.
// 호출자가 넘긴 맵은 바꾸지 않는다.
func withServiceName(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	maps.Copy(out, fields)
	if _, ok := out["service_name"]; !ok {
		if sn := os.Getenv(envServiceName); sn != "" {
			out["service_name"] = sn
		}
	}
	return out
}
