package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syntrixbase/pager/internal/ctxkeys"
)

type stubHandler struct {
	enabled bool
	err     error
	records []slog.Record
}

func (h *stubHandler) Enabled(context.Context, slog.Level) bool { return h.enabled }

func (h *stubHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return h.err
}

func (h *stubHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *stubHandler) WithGroup(string) slog.Handler      { return h }

func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2024, 1, 19, 10, 30, 0, 0, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	filter := NewLevelFilter(NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}), slog.LevelWarn)
	logger := slog.New(filter)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")

	ctx := context.Background()
	assert.False(t, filter.Enabled(ctx, slog.LevelInfo))
	assert.True(t, filter.Enabled(ctx, slog.LevelWarn))

	// Handle enforces the floor even when called directly.
	require.NoError(t, filter.Handle(ctx, record(slog.LevelInfo, "direct info")))
	assert.NotContains(t, buf.String(), "direct info")
}

func TestLevelFilter_RespectsWrappedLevel(t *testing.T) {
	filter := NewLevelFilter(NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}), slog.LevelWarn)
	assert.False(t, filter.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, filter.Enabled(context.Background(), slog.LevelError))
}

func TestLevelFilter_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewLevelFilter(NewTextHandler(buf, nil), slog.LevelWarn)).
		With("component", "pager").
		WithGroup("store")

	logger.Info("hidden")
	logger.Warn("slow", "op", "find")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] slow component=pager store.op=find")
}

func TestMultiHandler_FansOut(t *testing.T) {
	buf1, buf2 := &bytes.Buffer{}, &bytes.Buffer{}
	logger := slog.New(NewMultiHandler(
		NewTextHandler(buf1, nil),
		NewTextHandler(buf2, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	logger.Info("info only", "key", "value")
	logger.Warn("both")

	assert.Contains(t, buf1.String(), "info only key=value")
	assert.Contains(t, buf1.String(), "both")
	assert.NotContains(t, buf2.String(), "info only")
	assert.Contains(t, buf2.String(), "both")
}

func TestMultiHandler_Enabled(t *testing.T) {
	multi := NewMultiHandler(&stubHandler{}, &stubHandler{enabled: true})
	assert.True(t, multi.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewMultiHandler(&stubHandler{}).Enabled(context.Background(), slog.LevelError))
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_ContinuesAfterError(t *testing.T) {
	errA, errB := errors.New("a failed"), errors.New("b failed")
	a := &stubHandler{enabled: true, err: errA}
	b := &stubHandler{enabled: true, err: errB}
	c := &stubHandler{enabled: true}
	skipped := &stubHandler{}

	err := NewMultiHandler(a, skipped, b, c).Handle(context.Background(), record(slog.LevelInfo, "msg"))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)
	assert.Len(t, c.records, 1)
	assert.Empty(t, skipped.records)
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	buf1, buf2 := &bytes.Buffer{}, &bytes.Buffer{}
	logger := slog.New(NewMultiHandler(NewTextHandler(buf1, nil), NewTextHandler(buf2, nil))).
		With("service", "pager").
		WithGroup("req")

	logger.Info("served", "status", 200)

	for _, out := range []string{buf1.String(), buf2.String()} {
		assert.Contains(t, out, "served service=pager req.status=200")
	}
}

func TestTextHandler_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewTextHandler(buf, nil)

	err := h.Handle(context.Background(), record(slog.LevelInfo, "Server started",
		slog.Int("port", 8080),
		slog.String("addr", "0.0.0.0"),
		slog.Bool("tls", false),
		slog.Float64("ratio", 0.5),
		slog.Duration("took", 1500*time.Millisecond),
		slog.Uint64("n", 7),
	))
	require.NoError(t, err)

	assert.Equal(t,
		"2024-01-19T10:30:00Z [INFO] Server started port=8080 addr=0.0.0.0 tls=false ratio=0.5 took=1.5s n=7\n",
		buf.String())
}

func TestTextHandler_Quoting(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewTextHandler(buf, nil)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelError, "Store failed",
		slog.String("query", "a = b"),
		slog.String("empty", ""),
		slog.Any("error", errors.New("connection reset")),
		slog.String("line", "x\ny"),
	)))

	line := buf.String()
	assert.Contains(t, line, `query="a = b"`)
	assert.Contains(t, line, `empty=""`)
	assert.Contains(t, line, `error="connection reset"`)
	assert.Contains(t, line, `line="x\ny"`)
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestTextHandler_Groups(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewTextHandler(buf, nil))

	logger.Info("page", slog.Group("plan", slog.Int("limit", 10), slog.Int("skip", 2)))
	logger.WithGroup("").Info("empty group", "k", "v")
	logger.Info("empty attrs", slog.Group("none"))

	out := buf.String()
	assert.Contains(t, out, "page plan.limit=10 plan.skip=2")
	assert.Contains(t, out, "empty group k=v")
	assert.Contains(t, out, "empty attrs\n")
}

func TestTextHandler_Level(t *testing.T) {
	h := NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))

	defaults := NewTextHandler(&bytes.Buffer{}, nil)
	assert.False(t, defaults.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, defaults.Enabled(context.Background(), slog.LevelInfo))
}

func TestTextHandler_DerivedHandlersShareWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewTextHandler(buf, nil)
	derived := base.WithAttrs([]slog.Attr{slog.String("a", "1")})

	require.NoError(t, base.Handle(context.Background(), record(slog.LevelInfo, "one")))
	require.NoError(t, derived.Handle(context.Background(), record(slog.LevelInfo, "two")))

	assert.Equal(t, []string{
		"2024-01-19T10:30:00Z [INFO] one",
		"2024-01-19T10:30:00Z [INFO] two a=1",
	}, strings.Split(strings.TrimSpace(buf.String()), "\n"))
	assert.Same(t, base, base.WithAttrs(nil))
}

func TestContextHandler(t *testing.T) {
	stub := &stubHandler{enabled: true}
	h := NewContextHandler(stub)

	ctx := ctxkeys.WithCollection(ctxkeys.WithRequestID(context.Background(), "abc"), "users")

	require.NoError(t, h.Handle(ctx, record(slog.LevelInfo, "with id")))
	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "without id")))
	require.Len(t, stub.records, 2)

	var attrs []string
	stub.records[0].Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a.Key+"="+a.Value.String())
		return true
	})
	assert.Equal(t, []string{"request_id=abc", "collection=users"}, attrs)
	assert.Zero(t, stub.records[1].NumAttrs())
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
}
