package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/grantkit/pkg/logger"
)

type ctxKey string

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew_DefaultsToJSONInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("visible")
	record := logLine(t, &buf)
	assert.Equal(t, "visible", record["msg"])
}

func TestNew_StaticAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "backoffice")),
	)

	log.Info("hello")
	record := logLine(t, &buf)
	assert.Equal(t, "backoffice", record["service"])
}

func TestNew_ContextValueExtraction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	key := ctxKey("request_id")
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", key),
	)

	ctx := context.WithValue(context.Background(), key, "req-123")
	log.InfoContext(ctx, "with request")
	record := logLine(t, &buf)
	assert.Equal(t, "req-123", record["request_id"])

	buf.Reset()
	log.InfoContext(context.Background(), "without request")
	record = logLine(t, &buf)
	assert.NotContains(t, record, "request_id")
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
	)

	log.Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
