package logx_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"nycschools/pkg/logx"
)

func TestParseLevel(t *testing.T) {
	rq := require.New(t)

	rq.Equal(slog.LevelDebug, logx.ParseLevel("debug"))
	rq.Equal(slog.LevelWarn, logx.ParseLevel("WARN"))
	rq.Equal(slog.LevelInfo, logx.ParseLevel("nonsense"))
	rq.Equal(slog.LevelInfo, logx.ParseLevel(""))
}

func TestNewLoggerJSON(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	log := logx.NewLogger(&buf, "json", "warn")
	log.Info("dropped")
	log.Warn("kept", slog.String(logx.FieldSchoolID, "01M292"))

	rq.NotContains(buf.String(), "dropped")
	rq.Contains(buf.String(), `"school-id":"01M292"`)
}
