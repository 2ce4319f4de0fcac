package telemetry

import (
	"sync"
)

type ReportLevel int

const (
	LEVEL_BROKEN ReportLevel = iota
	LEVEL_WARNING
	LEVEL_DEBUG
	LEVEL_COUNT
)

type Report struct {
	Level  ReportLevel
	Id     string
	Params []any
	Count  int64
}

// Recorder implements API by keeping every report in memory, it is meant for
// asserting on what a component reported in tests.
type Recorder struct {
	lock    sync.Mutex
	reports []Report
}

func (r *Recorder) record(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.record(Report{Level: LEVEL_BROKEN, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.record(Report{Level: LEVEL_WARNING, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.record(Report{Level: LEVEL_DEBUG, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.record(Report{Level: LEVEL_COUNT, Id: id, Count: count})
}

// Reports returns a copy of the reports of the given level in the order they
// were made.
func (r *Recorder) Reports(level ReportLevel) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []Report
	for _, report := range r.reports {
		if report.Level == level {
			out = append(out, report)
		}
	}
	return out
}
