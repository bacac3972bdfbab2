// Package buildpipeline carries progress events from the driver to whoever
// renders them (the terminal UI, logs, tests).
package buildpipeline

import "time"

// Stage describes a step of the structuring pipeline.
type Stage string

const (
	StageValidate Stage = "validate" // форма проекта
	StageDiscover Stage = "discover"
	StageLoad     Stage = "load"
	StageLex      Stage = "lex"
	StageScan     Stage = "scan"   // заголовки объявлений
	StageInsert   Stage = "insert" // вставка в Resource Table
)

// Stages lists file-level stages in pipeline order.
var Stages = []Stage{StageLoad, StageLex, StageScan, StageInsert}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached" // токены взяты из кэша
	StatusError   Status = "error"
	StatusSkipped Status = "skipped" // сборка уже остановлена
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusSkipped
}

// Event reports progress for a file (or for the whole pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums durations per stage; file stages accumulate over all files.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates dur into stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
