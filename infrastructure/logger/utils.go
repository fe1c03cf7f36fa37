package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs the start of functionName at debug level
// and returns a function that logs its end along with the elapsed time.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}

// ProgressLogger logs how many of total items were processed, at most once
// per interval.
type ProgressLogger struct {
	log        *Logger
	what       string
	total      int
	interval   time.Duration
	start      time.Time
	lastReport time.Time
}

// NewProgressLogger returns a ProgressLogger reporting on total items.
// A total of zero means the total is unknown.
func NewProgressLogger(log *Logger, what string, total int, interval time.Duration) *ProgressLogger {
	now := time.Now()
	return &ProgressLogger{
		log:        log,
		what:       what,
		total:      total,
		interval:   interval,
		start:      now,
		lastReport: now,
	}
}

// Processed records that done items were processed so far.
func (p *ProgressLogger) Processed(done int) {
	now := time.Now()
	if now.Sub(p.lastReport) < p.interval {
		return
	}
	p.lastReport = now

	elapsed := now.Sub(p.start).Round(time.Second)
	if p.total == 0 {
		p.log.Infof("%s: %d processed, elapsed %s", p.what, done, elapsed)
		return
	}
	p.log.Infof("%s: %d/%d (%.2f%%), elapsed %s",
		p.what, done, p.total, float64(done)/float64(p.total)*100, elapsed)
}
