// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     engine
// Description: Batch execution of multi-command plans
// Author:      Mike Stoffels
// Created:     2026-02-14
// License:     MIT
// ============================================================================

package engine

import (
	"fmt"

	"github.com/msto63/mTW/internal/command"
)

// PlanResult collects the outcomes of a plan run. Summary is set only
// when the plan held more than one command.
type PlanResult struct {
	Results []ExecutionResult
	Summary string
}

// ExecutePlan runs the commands of a plan in order. Insight results
// never stop the run; the first error result does, and the remaining
// commands are not attempted. Messages of multi-command plans carry a
// step prefix so the caller can show progress per command.
func (e *Engine) ExecutePlan(cmds []command.Command) PlanResult {
	multi := len(cmds) > 1
	results := make([]ExecutionResult, 0, len(cmds))

	for i, cmd := range cmds {
		res := e.Execute(cmd)
		if multi && res.Message != "" {
			res.Message = fmt.Sprintf("Step %d/%d: %s", i+1, len(cmds), res.Message)
		}
		results = append(results, res)
		if res.IsError() {
			break
		}
	}

	var summary string
	if multi {
		success := 0
		for _, r := range results {
			if r.Status == StatusSuccess {
				success++
			}
		}
		summary = fmt.Sprintf("Completed %d/%d operations", success, len(results))
	}

	return PlanResult{Results: results, Summary: summary}
}
