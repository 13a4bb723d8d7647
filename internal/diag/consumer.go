package diag

// Consumer receives accepted diagnostics from an Engine.
//
// Receive is called with whole batches, one call per Emit, from a single
// worker goroutine per engine, so implementations need no locking against the
// engine itself. Flush may be called many times over a build and must not
// discard data that an earlier Flush already wrote.
//
// Consumers are registered by identity; use pointer types.
type Consumer interface {
	Receive(problems []Problem)
	Flush() error
}
