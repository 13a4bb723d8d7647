package diag

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// EngineOptions configures severity policy. The zero value keeps warnings and
// errors and applies no overrides.
type EngineOptions struct {
	// FilterLevel is the least severe level that is kept (inclusive).
	FilterLevel           Severity
	TreatWarningsAsErrors bool
	// ErrorIDs are identifiers always reported as errors. Wins over WarningIDs.
	ErrorIDs []string
	// WarningIDs are identifiers always reported as warnings.
	WarningIDs []string
	Logger     *slog.Logger
}

// DefaultEngineOptions keeps warnings and errors.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{FilterLevel: SevWarning}
}

// Engine aggregates diagnostics from concurrent producers and fans them out to
// consumers. Safe for concurrent use.
type Engine struct {
	mu               sync.Mutex
	consumers        []Consumer
	problems         []Problem
	sawError         bool
	filter           Severity
	warningsAsErrors bool
	errorIDs         map[string]struct{}
	warningIDs       map[string]struct{}

	queue  serialQueue
	logger *slog.Logger
}

// NewEngine creates an engine with the given options.
func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		filter:           opts.FilterLevel,
		warningsAsErrors: opts.TreatWarningsAsErrors,
		errorIDs:         toSet(opts.ErrorIDs),
		warningIDs:       toSet(opts.WarningIDs),
		logger:           logger,
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add registers a consumer. Registering the same consumer again replaces the
// earlier registration.
func (e *Engine) Add(c Consumer) {
	if c == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(c); i >= 0 {
		e.consumers[i] = c
		return
	}
	e.consumers = append(e.consumers, c)
}

// Remove unregisters a consumer; no-op if it was never added.
func (e *Engine) Remove(c Consumer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(c); i >= 0 {
		e.consumers = slices.Delete(e.consumers, i, i+1)
	}
}

// indexOf must be called with e.mu held.
func (e *Engine) indexOf(c Consumer) int {
	for i, existing := range e.consumers {
		if sameConsumer(existing, c) {
			return i
		}
	}
	return -1
}

func sameConsumer(a, b Consumer) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Consumers returns the number of registered consumers.
func (e *Engine) Consumers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.consumers)
}

// SetFilterLevel changes the inclusive severity threshold.
func (e *Engine) SetFilterLevel(sev Severity) {
	e.mu.Lock()
	e.filter = sev
	e.mu.Unlock()
}

func (e *Engine) SetTreatWarningsAsErrors(on bool) {
	e.mu.Lock()
	e.warningsAsErrors = on
	e.mu.Unlock()
}

// effectiveSeverity must be called with e.mu held.
func (e *Engine) effectiveSeverity(d *Diagnostic) Severity {
	if _, ok := e.errorIDs[d.Identifier]; ok {
		return SevError
	}
	if _, ok := e.warningIDs[d.Identifier]; ok {
		return SevWarning
	}
	if e.warningsAsErrors && d.Severity == SevWarning {
		return SevError
	}
	return d.Severity
}

// Emit applies severity overrides and the filter, logs what survives and
// schedules delivery of the surviving batch to every registered consumer.
// A batch that is filtered down to nothing has no effect at all.
func (e *Engine) Emit(problems ...Problem) {
	if len(problems) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	accepted := make([]Problem, 0, len(problems))
	for _, p := range problems {
		p.Diagnostic.Severity = e.effectiveSeverity(&p.Diagnostic)
		if !p.Diagnostic.Severity.AtLeast(e.filter) {
			continue
		}
		accepted = append(accepted, p)
	}
	if len(accepted) == 0 {
		return
	}

	if HasErrors(accepted) {
		e.sawError = true
	}
	e.problems = append(e.problems, accepted...)

	if len(e.consumers) == 0 {
		return
	}
	consumers := slices.Clone(e.consumers)
	// submit под e.mu: порядок доставки совпадает с порядком записи в лог
	e.queue.submit(func() {
		for _, c := range consumers {
			c.Receive(slices.Clone(accepted))
		}
	})
}

// Flush waits until every emitted batch has been delivered and then flushes
// each consumer. A failing consumer does not prevent the others from being
// flushed; its error is logged and swallowed.
func (e *Engine) Flush() {
	e.mu.Lock()
	consumers := slices.Clone(e.consumers)
	e.mu.Unlock()

	done := make(chan struct{})
	e.queue.submit(func() {
		defer close(done)
		for _, c := range consumers {
			if err := flushConsumer(c); err != nil {
				e.logger.Warn("diagnostic consumer flush failed",
					"consumer", fmt.Sprintf("%T", c),
					"err", err)
			}
		}
	})
	<-done
}

func flushConsumer(c Consumer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during flush: %v", r)
		}
	}()
	return c.Flush()
}

// ClearDiagnostics empties the log and resets the error flag. Consumers and
// severity policy are unaffected.
func (e *Engine) ClearDiagnostics() {
	e.mu.Lock()
	e.problems = nil
	e.sawError = false
	e.mu.Unlock()
}

// Problems returns a copy of every accepted problem in emission order.
func (e *Engine) Problems() []Problem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.problems)
}

// HasErrors reports whether an error-severity problem was accepted since the
// last ClearDiagnostics.
func (e *Engine) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sawError
}
