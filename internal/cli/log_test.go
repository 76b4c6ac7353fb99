package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taxoviz/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Exported 3 branches")

	if !strings.Contains(buf.String(), "Exported 3 branches (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	defer observability.Reset()
	observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogInfo)
	if _, ok := observability.Pipeline().(observability.NoopPipelineHooks); !ok {
		t.Fatal("hooks registered at info level")
	}

	c.SetLogLevel(LogDebug)
	observability.Pipeline().OnTraverseComplete(context.Background(), "ex:animals", 3, 2, time.Millisecond)
	observability.Cache().OnCacheHit(context.Background(), "artifact")
	out := buf.String()
	if !strings.Contains(out, "traverse complete") || !strings.Contains(out, "cache hit") {
		t.Errorf("debug hooks did not log:\n%s", out)
	}
}
