package render

import "log/slog"

// Progress receives per-band completion reports. Implementations must be safe
// for concurrent use: every band reports from its own goroutine.
type Progress interface {
	Report(band, percent int)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(band, percent int)

func (f ProgressFunc) Report(band, percent int) { f(band, percent) }

// NopProgress discards reports.
var NopProgress Progress = ProgressFunc(func(int, int) {})

// LogProgress writes reports to logger at info level.
func LogProgress(logger *slog.Logger) Progress {
	return ProgressFunc(func(band, percent int) {
		if percent == 100 {
			logger.Info("band done", "band", band)
			return
		}
		logger.Info("band progress", "band", band, "percent", percent)
	})
}

// stepper turns row counts into reports at every 10% boundary.
type stepper struct {
	band  int
	total int
	last  int
	sink  Progress
}

func (s *stepper) rowDone(done int) {
	pct := 100 * done / s.total
	if pct/10 > s.last/10 {
		s.last = pct
		s.sink.Report(s.band, pct)
	}
}
