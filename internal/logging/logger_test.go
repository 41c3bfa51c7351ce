package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewQuietDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("shown", zap.String("plugin", "highlight"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("non-verbose logger wrote debug/info output: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "highlight") {
		t.Errorf("warning missing from output: %q", out)
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("candidate skipped", zap.String("version", "1.0.0"))

	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "candidate skipped") {
		t.Errorf("verbose logger dropped debug line: %q", out)
	}
}
