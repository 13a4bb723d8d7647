// Package convert runs a documentation conversion: it builds the topic graph
// for a set of symbols, applies curation, and translates every symbol into a
// rendered page in parallel, reporting problems to the session's engine.
package convert

import (
	"log/slog"

	"doccomp/internal/diag"
	"doccomp/internal/lang"
	"doccomp/internal/topic"
)

// Session is the state one compilation run shares between its workers. The
// language registry and the engine tolerate concurrent use; the graph is
// written only while the pipeline builds it.
type Session struct {
	Languages *lang.Registry
	Engine    *diag.Engine
	Graph     *topic.Graph
	Logger    *slog.Logger
}

// NewSession returns a session with a fresh registry and graph.
func NewSession(engine *diag.Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if engine == nil {
		engine = diag.NewEngine(diag.EngineOptions{FilterLevel: diag.SevWarning, Logger: logger})
	}
	return &Session{
		Languages: lang.NewRegistry(),
		Engine:    engine,
		Graph:     topic.NewGraph(),
		Logger:    logger,
	}
}
