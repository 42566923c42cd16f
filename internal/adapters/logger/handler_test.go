package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/modcache/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info level",
			level:      slog.LevelInfo,
			msg:        "information message",
			goldenName: "handler_info",
		},
		{
			name:       "warn level",
			level:      slog.LevelWarn,
			msg:        "warning message",
			goldenName: "handler_warn",
		},
		{
			name:       "error level",
			level:      slog.LevelError,
			msg:        "error message",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single attribute",
			attrs:      []slog.Attr{slog.String("key", "value")},
			msg:        "single attr message",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple attributes",
			attrs:      []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			msg:        "multi attr message",
			goldenName: "handler_attrs_multi",
		},
		{
			name:       "group attribute",
			attrs:      []slog.Attr{slog.Group("g", slog.String("k", "v"))},
			msg:        "group attr message",
			goldenName: "handler_attrs_group",
		},
		{
			name:       "nested group attribute",
			attrs:      []slog.Attr{slog.Group("outer", slog.Group("inner", slog.String("k", "v")))},
			msg:        "nested group message",
			goldenName: "handler_attrs_nested_group",
		},
		{
			name:       "mixed group and regular attrs",
			attrs:      []slog.Attr{slog.String("regular", "val"), slog.Group("g", slog.String("k", "v"))},
			msg:        "mixed attrs message",
			goldenName: "handler_attrs_mixed",
		},
		{
			name:       "empty attribute value",
			attrs:      []slog.Attr{slog.String("empty", "")},
			msg:        "empty value message",
			goldenName: "handler_attrs_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}).WithAttrs(tt.attrs)
			lg := slog.New(handler)

			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	tests := []struct {
		name       string
		groups     []string
		attr       slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single group",
			groups:     []string{"request"},
			attr:       slog.String("id", "123"),
			msg:        "single group message",
			goldenName: "handler_group_single",
		},
		{
			name:       "nested groups",
			groups:     []string{"a", "b"},
			attr:       slog.String("key", "val"),
			msg:        "nested group message",
			goldenName: "handler_group_nested",
		},
		{
			name:       "triple nested groups",
			groups:     []string{"a", "b", "c"},
			attr:       slog.String("k", "v"),
			msg:        "triple nested message",
			goldenName: "handler_group_triple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			var handler slog.Handler = logger.NewPrettyHandler(buf, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			})

			for _, g := range tt.groups {
				handler = handler.WithGroup(g)
			}

			lg := slog.New(handler)
			lg.Info(tt.msg, tt.attr.Key, tt.attr.Value.Any())

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup_EmptyName(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	// WithGroup("") must return the receiver per the slog.Handler contract.
	same := handler.WithGroup("")
	assert.Same(t, handler, same)

	lg := slog.New(same)
	lg.Info("empty group test", "key", "val")

	g := goldie.New(t)
	g.Assert(t, "handler_group_empty", buf.Bytes())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		wantEnabled  bool
	}{
		{
			name:         "debug below info",
			handlerLevel: slog.LevelInfo,
			recordLevel:  slog.LevelDebug,
			wantEnabled:  false,
		},
		{
			name:         "info at info",
			handlerLevel: slog.LevelInfo,
			recordLevel:  slog.LevelInfo,
			wantEnabled:  true,
		},
		{
			name:         "error above info",
			handlerLevel: slog.LevelInfo,
			recordLevel:  slog.LevelError,
			wantEnabled:  true,
		},
		{
			name:         "warn at error",
			handlerLevel: slog.LevelError,
			recordLevel:  slog.LevelWarn,
			wantEnabled:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{
				Level: tt.handlerLevel,
			})
			assert.Equal(t, tt.wantEnabled, handler.Enabled(t.Context(), tt.recordLevel))
		})
	}
}
