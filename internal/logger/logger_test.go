package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel("info")
	})
	return &buf
}

func TestLogger_RequestID(t *testing.T) {
	buf := captureLog(t)

	ctx := WithRequestID(context.Background(), "rid-42")
	New(ctx).LogError("store.upsert", errors.New("boom"))
	New(context.Background()).LogInfof("sync.flush", "flushed=%d", 3)

	out := buf.String()
	assert.Contains(t, out, "[error] request_id=rid-42 operation=store.upsert error=boom")
	assert.Contains(t, out, "[info] request_id=unknown operation=sync.flush flushed=3")
}

func TestLogger_Level(t *testing.T) {
	buf := captureLog(t)

	SetLevel("warn")
	l := Background()
	l.LogInfo("op", "hidden")
	l.LogDebugf("op", "hidden=%d", 1)
	l.LogWarn("op", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[warn] request_id=background operation=op message=shown")

	buf.Reset()
	SetLevel("debug")
	l.LogDebugf("op", "value=%d", 7)
	assert.Contains(t, buf.String(), "[debug] request_id=background operation=op value=7")
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestSetLevel_Names(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel(" WARNING ")
	assert.Equal(t, slog.LevelWarn, level.Level())
	SetLevel("error")
	assert.Equal(t, slog.LevelError, level.Level())
	SetLevel("loud")
	assert.Equal(t, slog.LevelInfo, level.Level())
}
