package diag

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"doccomp/internal/source"
)

func problem(sev Severity, id, summary string) Problem {
	return NewProblem(New(sev, id, summary))
}

func TestEmitForceErrorWinsOverForceWarning(t *testing.T) {
	e := NewEngine(EngineOptions{
		FilterLevel: SevWarning,
		ErrorIDs:    []string{"org.test.X"},
		WarningIDs:  []string{"org.test.X"},
	})
	e.Emit(problem(SevWarning, "org.test.X", "x"))

	got := e.Problems()
	if len(got) != 1 || got[0].Diagnostic.Severity != SevError {
		t.Fatalf("problems = %+v, want one error", got)
	}
	if !e.HasErrors() {
		t.Fatalf("expected error flag")
	}
}

func TestEmitSeverityOverrides(t *testing.T) {
	tests := []struct {
		name string
		opts EngineOptions
		in   Severity
		id   string
		want Severity
	}{
		{"forced warning demotes error", EngineOptions{FilterLevel: SevHint, WarningIDs: []string{"w"}}, SevError, "w", SevWarning},
		{"forced warning promotes hint", EngineOptions{FilterLevel: SevHint, WarningIDs: []string{"w"}}, SevHint, "w", SevWarning},
		{"warnings as errors", EngineOptions{FilterLevel: SevHint, TreatWarningsAsErrors: true}, SevWarning, "any", SevError},
		{"warnings as errors leaves notes", EngineOptions{FilterLevel: SevHint, TreatWarningsAsErrors: true}, SevInformation, "any", SevInformation},
		{"forced warning beats warnings as errors", EngineOptions{FilterLevel: SevHint, TreatWarningsAsErrors: true, WarningIDs: []string{"w"}}, SevWarning, "w", SevWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.opts)
			e.Emit(problem(tt.in, tt.id, "s"))
			got := e.Problems()
			if len(got) != 1 {
				t.Fatalf("got %d problems, want 1", len(got))
			}
			if got[0].Diagnostic.Severity != tt.want {
				t.Fatalf("severity = %v, want %v", got[0].Diagnostic.Severity, tt.want)
			}
		})
	}
}

func TestEmitFilterThreshold(t *testing.T) {
	e := NewEngine(EngineOptions{FilterLevel: SevWarning})
	c := &Collector{}
	e.Add(c)

	// одиночный hint отфильтрован, потребитель не вызывается
	e.Emit(problem(SevHint, "h", "hint only"))
	e.Emit(problem(SevError, "e", "error"), problem(SevHint, "h", "hint"))
	e.Flush()

	if got := e.Problems(); len(got) != 1 || got[0].Diagnostic.Identifier != "e" {
		t.Fatalf("logged problems = %+v, want only the error", got)
	}
	batches := c.Batches()
	if len(batches) != 1 {
		t.Fatalf("consumer received %d batches, want 1", len(batches))
	}
	if len(batches[0]) != 1 || batches[0][0].Diagnostic.Identifier != "e" {
		t.Fatalf("batch = %+v, want only the surviving error", batches[0])
	}
}

func TestEmitFullyFilteredBatchIsNoOp(t *testing.T) {
	e := NewEngine(EngineOptions{FilterLevel: SevError})
	c := &Collector{}
	e.Add(c)
	e.Emit(problem(SevWarning, "w", "w"), problem(SevHint, "h", "h"))
	e.Flush()

	if len(e.Problems()) != 0 || e.HasErrors() {
		t.Fatalf("engine state changed for a fully filtered batch")
	}
	if len(c.Batches()) != 0 {
		t.Fatalf("consumer was notified for a fully filtered batch")
	}
	if c.Flushes() != 1 {
		t.Fatalf("flushes = %d, want 1", c.Flushes())
	}
}

func TestAddSameConsumerTwiceDeliversOnce(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	c := &Collector{}
	e.Add(c)
	e.Add(c)
	if e.Consumers() != 1 {
		t.Fatalf("consumers = %d, want 1", e.Consumers())
	}
	e.Emit(problem(SevWarning, "w", "w"))
	e.Flush()
	if len(c.Batches()) != 1 {
		t.Fatalf("batches = %d, want 1", len(c.Batches()))
	}

	e.Remove(c)
	e.Emit(problem(SevWarning, "w", "again"))
	e.Flush()
	if len(c.Batches()) != 1 {
		t.Fatalf("removed consumer still receives diagnostics")
	}
}

func TestEmitPreservesOrderAcrossGoroutines(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	c := &Collector{}
	e.Add(c)

	const producers = 8
	const perProducer = 50
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				// каждый батч из двух проблем должен дойти целиком
				e.Emit(
					problem(SevWarning, fmt.Sprintf("p%d", p), fmt.Sprintf("%d-a", i)),
					problem(SevWarning, fmt.Sprintf("p%d", p), fmt.Sprintf("%d-b", i)),
				)
			}
		}()
	}
	wg.Wait()
	e.Flush()

	batches := c.Batches()
	if len(batches) != producers*perProducer {
		t.Fatalf("batches = %d, want %d", len(batches), producers*perProducer)
	}
	logged := e.Problems()
	flat := c.Problems()
	if len(flat) != len(logged) {
		t.Fatalf("delivered %d problems, logged %d", len(flat), len(logged))
	}
	for i := range logged {
		if flat[i].Diagnostic.Summary != logged[i].Diagnostic.Summary ||
			flat[i].Diagnostic.Identifier != logged[i].Diagnostic.Identifier {
			t.Fatalf("delivery order differs from emit order at %d", i)
		}
	}
	for i, b := range batches {
		if len(b) != 2 || b[0].Diagnostic.Identifier != b[1].Diagnostic.Identifier {
			t.Fatalf("batch %d was split or interleaved: %+v", i, b)
		}
	}
}

type failingConsumer struct {
	Collector
}

func (f *failingConsumer) Flush() error {
	_ = f.Collector.Flush()
	return errors.New("disk full")
}

func TestFlushSwallowsConsumerErrors(t *testing.T) {
	e := NewEngine(DefaultEngineOptions())
	broken := &failingConsumer{}
	healthy := &Collector{}
	e.Add(broken)
	e.Add(healthy)

	e.Emit(problem(SevError, "e", "boom"))
	e.Flush()
	e.Flush()

	if healthy.Flushes() != 2 || broken.Flushes() != 2 {
		t.Fatalf("flushes healthy=%d broken=%d, want 2 each", healthy.Flushes(), broken.Flushes())
	}
	if len(healthy.Problems()) != 1 {
		t.Fatalf("healthy consumer lost diagnostics")
	}
}

func TestClearDiagnosticsKeepsConsumersAndPolicy(t *testing.T) {
	e := NewEngine(EngineOptions{FilterLevel: SevWarning, ErrorIDs: []string{"x"}})
	c := &Collector{}
	e.Add(c)
	e.Emit(problem(SevError, "e", "e"))
	e.ClearDiagnostics()

	if e.HasErrors() || len(e.Problems()) != 0 {
		t.Fatalf("ClearDiagnostics did not reset state")
	}
	e.Emit(problem(SevWarning, "x", "forced"))
	e.Flush()
	if !e.HasErrors() {
		t.Fatalf("override lost after ClearDiagnostics")
	}
	if len(c.Batches()) != 2 {
		t.Fatalf("consumer lost after ClearDiagnostics")
	}
}

func TestProblemOffsetAppliesToEveryReplacement(t *testing.T) {
	rng := source.NewRange(1, 2, 1, 5)
	p := NewProblem(NewAt(SevWarning, "id", "doc.md", rng, "s")).
		WithSolution("fix", Replacement{Range: source.NewRange(1, 2, 1, 3), Replacement: "a"},
			Replacement{Range: source.NewRange(2, 1, 2, 4), Replacement: "b"})

	base := source.NewRange(10, 4, 30, 1)
	shifted := p.Offset(base)

	if *shifted.Diagnostic.Range != source.NewRange(11, 6, 11, 9) {
		t.Fatalf("diagnostic range = %v", *shifted.Diagnostic.Range)
	}
	reps := shifted.PossibleSolutions[0].Replacements
	if reps[0].Range != source.NewRange(11, 6, 11, 7) || reps[1].Range != source.NewRange(12, 5, 12, 8) {
		t.Fatalf("replacement ranges = %v, %v", reps[0].Range, reps[1].Range)
	}
	// оригинал не изменился
	if *p.Diagnostic.Range != rng || p.PossibleSolutions[0].Replacements[0].Range != source.NewRange(1, 2, 1, 3) {
		t.Fatalf("Offset mutated the original problem")
	}
}

func TestSeverityOrdering(t *testing.T) {
	order := []Severity{SevError, SevWarning, SevInformation, SevHint}
	for i := 1; i < len(order); i++ {
		if !order[i-1].MoreSevereThan(order[i]) {
			t.Fatalf("%v should be more severe than %v", order[i-1], order[i])
		}
	}
	for _, s := range []string{"error", "Warning", "info", "hint"} {
		if _, err := ParseSeverity(s); err != nil {
			t.Fatalf("ParseSeverity(%q) error: %v", s, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}
