package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogProgressAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	p := LogProgress(logger)

	p.Report(3, 40)
	p.Report(3, 100)

	out := buf.String()
	if !strings.Contains(out, "band progress") || !strings.Contains(out, "percent=40") {
		t.Errorf("Expected periodic progress at info level, got %q", out)
	}
	if !strings.Contains(out, "band done") || !strings.Contains(out, "band=3") {
		t.Errorf("Expected completion line, got %q", out)
	}
}

func TestStepperReportsEveryTenPercent(t *testing.T) {
	rec := &recorder{}
	s := &stepper{band: 1, total: 20, sink: rec}
	for row := 1; row <= 20; row++ {
		s.rowDone(row)
	}

	got := rec.all[1]
	if len(got) != 10 {
		t.Fatalf("Expected 10 reports for 20 rows, got %v", got)
	}
	for i, pct := range got {
		if want := 10 * (i + 1); pct != want {
			t.Errorf("Report %d: expected %d, got %d", i, want, pct)
		}
	}
}
