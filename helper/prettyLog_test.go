package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with empty options", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Level option is respected by the logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn)

		logger.Info("hidden message")
		logger.Warn("visible message")

		assert.NotContains(t, buf.String(), "hidden message", "Expected info record to be filtered")
		assert.Contains(t, buf.String(), "visible message", "Expected warn record to be written")
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	levels := []struct {
		level  slog.Level
		prefix string
	}{
		{slog.LevelDebug, "DEBUG:"},
		{slog.LevelInfo, "INFO:"},
		{slog.LevelWarn, "WARN:"},
		{slog.LevelError, "ERROR:"},
	}

	for _, tc := range levels {
		t.Run("Handle "+tc.prefix+" record", func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug}})

			record := slog.NewRecord(time.Now(), tc.level, "graph built", 0)
			record.AddAttrs(slog.String("company", "Acme"), slog.Int("nodes", 6))

			err := handler.Handle(ctx, record)

			assert.NoError(t, err, "Expected Handle to not return an error")
			output := buf.String()
			assert.Contains(t, output, tc.prefix, "Expected output to contain the level")
			assert.Contains(t, output, "graph built", "Expected output to contain the message")
			assert.Contains(t, output, "Acme", "Expected output to contain attribute value")
			assert.Contains(t, output, "6", "Expected output to contain numeric attribute value")
		})
	}

	t.Run("Handle record without attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		err := handler.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "simple message", 0))

		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "{}", "Expected empty JSON object for attributes")
	})

	t.Run("Handle record formats timestamp", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		err := handler.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "time test", 0))

		assert.NoError(t, err)
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String(), "Expected timestamp in [15:04:05.000] format")
	})
}

func TestPrettyHandlerWith(t *testing.T) {
	t.Run("Logger attributes keep the pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo).With(slog.String("company", "Acme"))

		logger.Info("graph built", slog.Int("nodes", 6))

		output := buf.String()
		assert.Contains(t, output, "INFO:", "Expected pretty level prefix")
		assert.Contains(t, output, `"company":"Acme"`, "Expected logger attribute in output")
		assert.Contains(t, output, `"nodes":6`, "Expected record attribute in output")
		assert.NotContains(t, output, `"level"`, "Expected no JSON handler output")
	})

	t.Run("Handler returned by WithAttrs is a PrettyHandler", func(t *testing.T) {
		handler := NewPrettyHandler(&bytes.Buffer{}, PrettyHandlerOptions{})

		_, ok := handler.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*PrettyHandler)
		assert.True(t, ok)
		_, ok = handler.WithGroup("db").(*PrettyHandler)
		assert.True(t, ok)
	})

	t.Run("Groups prefix attribute keys", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo).WithGroup("db").With(slog.String("name", "test"))

		logger.Info("connected", slog.String("host", "localhost"))

		output := buf.String()
		assert.Contains(t, output, `"db.name":"test"`)
		assert.Contains(t, output, `"db.host":"localhost"`)
	})

	t.Run("Derived loggers do not share attributes", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewLogger(&buf, slog.LevelInfo)
		first := base.With(slog.String("company", "Acme"))
		base.With(slog.String("company", "Other"))

		first.Info("first")

		assert.Contains(t, buf.String(), `"company":"Acme"`)
		assert.NotContains(t, buf.String(), "Other")
	})
}
