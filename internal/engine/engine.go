// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     engine
// Description: Snapshot-based command execution engine with undo support
// Author:      Mike Stoffels
// Created:     2026-02-14
// License:     MIT
// ============================================================================

// Package engine owns the current table and its execution history. Every
// mutating command runs against a pre-execution snapshot: on success the
// new table is committed and logged, on failure the snapshot is restored
// and the caller gets a structured error result. Aggregations and the
// insight/error pass-throughs never touch the history stack.
package engine

import (
	"fmt"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/logging"
)

// contextSampleRows is the number of leading rows exposed to the
// translation layer as grounding context
const contextSampleRows = 3

// LogEntry records one committed mutation
type LogEntry struct {
	Action    command.Action
	Params    command.Params
	Reasoning string
	Status    string
}

// Engine executes commands against an in-memory table. It is owned by a
// single caller; execution is synchronous and commands never overlap.
type Engine struct {
	tbl       *table.Table
	snapshots []*table.Table
	log       []LogEntry
	logger    *logging.Logger
}

// Options configures engine behavior
type Options struct {
	Logger *logging.Logger
}

// New creates an engine owning the given table. The table becomes the
// initial snapshot, so a fresh engine can always be reset back to its
// load state.
func New(tbl *table.Table, opts Options) *Engine {
	if tbl == nil {
		tbl = &table.Table{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Engine{
		tbl:       tbl,
		snapshots: []*table.Table{tbl.Clone()},
		logger:    logger.WithField("component", "engine"),
	}
}

// Execute runs one command. Failures never propagate as Go errors: every
// outcome is folded into an ExecutionResult so the caller can render it,
// and the table is guaranteed to be unchanged after an error result.
func (e *Engine) Execute(cmd command.Command) ExecutionResult {
	switch p := cmd.Params.(type) {
	case command.ErrorParams:
		return ExecutionResult{
			Status:      StatusError,
			Message:     p.Message,
			RawResponse: p.RawResponse,
		}
	case command.InsightParams:
		return ExecutionResult{
			Status:    StatusInsight,
			Response:  p.Response,
			Reasoning: cmd.Reasoning,
		}
	}

	if cmd.Action.Aggregation() {
		insight, err := routeAggregation(e.tbl, cmd)
		if err != nil {
			return e.failure(cmd, err)
		}
		return ExecutionResult{
			Status:    StatusInsight,
			Response:  insight.Response,
			Reasoning: cmd.Reasoning,
			Data:      insight.Data,
		}
	}

	e.snapshots = append(e.snapshots, e.tbl.Clone())

	next, err := route(e.tbl, cmd)
	if err != nil {
		e.snapshots = e.snapshots[:len(e.snapshots)-1]
		return e.failure(cmd, err)
	}

	e.tbl = next
	e.log = append(e.log, LogEntry{
		Action:    cmd.Action,
		Params:    cmd.Params,
		Reasoning: cmd.Reasoning,
		Status:    StatusSuccess,
	})

	e.logger.Debug("Command committed", logging.Fields{
		"action":  string(cmd.Action),
		"rows":    e.tbl.RowCount(),
		"columns": e.tbl.ColumnCount(),
		"history": len(e.snapshots),
	})

	return ExecutionResult{
		Status:         StatusSuccess,
		Message:        fmt.Sprintf("Successfully executed: %s", cmd.Action),
		Action:         cmd.Action,
		Reasoning:      cmd.Reasoning,
		NewRowCount:    e.tbl.RowCount(),
		NewColumnCount: e.tbl.ColumnCount(),
	}
}

func (e *Engine) failure(cmd command.Command, err error) ExecutionResult {
	detail := err.Error()
	e.logger.Debug("Command rolled back", logging.Fields{
		"action": string(cmd.Action),
		"error":  detail,
	})
	return ExecutionResult{
		Status:      StatusError,
		Message:     fmt.Sprintf("Execution failed: %s", detail),
		Action:      cmd.Action,
		ErrorDetail: detail,
	}
}

// Undo reverts the most recent committed mutation by restoring its
// pre-execution snapshot. Returns false when only the initial snapshot
// remains.
func (e *Engine) Undo() bool {
	if len(e.snapshots) <= 1 {
		return false
	}
	last := len(e.snapshots) - 1
	e.tbl = e.snapshots[last]
	e.snapshots = e.snapshots[:last]
	if len(e.log) > 0 {
		e.log = e.log[:len(e.log)-1]
	}
	e.logger.Debug("Undo applied", logging.Fields{
		"rows":    e.tbl.RowCount(),
		"columns": e.tbl.ColumnCount(),
		"history": len(e.snapshots),
	})
	return true
}

// CanUndo reports whether a committed mutation is available to revert
func (e *Engine) CanUndo() bool {
	return len(e.snapshots) > 1
}

// Reset replaces table, history and log in one step, as if the engine
// had been freshly created with the given table
func (e *Engine) Reset(tbl *table.Table) {
	if tbl == nil {
		tbl = &table.Table{}
	}
	e.tbl = tbl
	e.snapshots = []*table.Table{tbl.Clone()}
	e.log = nil
	e.logger.Debug("Engine reset", logging.Fields{
		"rows":    tbl.RowCount(),
		"columns": tbl.ColumnCount(),
	})
}

// Table returns the current table. Callers must not mutate it; the
// engine remains the single writer.
func (e *Engine) Table() *table.Table {
	return e.tbl
}

// History returns a copy of the action log, one entry per committed
// mutation
func (e *Engine) History() []LogEntry {
	out := make([]LogEntry, len(e.log))
	copy(out, e.log)
	return out
}

// HistoryDepth returns the number of snapshots on the stack, including
// the initial load state
func (e *Engine) HistoryDepth() int {
	return len(e.snapshots)
}

// Context describes the current table for the translation layer
func (e *Engine) Context() table.Context {
	return e.tbl.Describe(contextSampleRows)
}
