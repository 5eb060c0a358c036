// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     tui
// Description: Message types for async operations in the terminal client
// Author:      Mike Stoffels
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package tui

import (
	"time"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/translate"
)

// ChatMessage represents one entry of the conversation pane
type ChatMessage struct {
	Role      string        // user, assistant, system
	Content   string        // message content
	Reasoning string        // model reasoning, shown when enabled
	Model     string        // model used (for assistant messages)
	IsError   bool          // render with error styling
	Timestamp time.Time     // when the message was added
	Duration  time.Duration // how long the round trip took
}

// Message types for tea.Cmd async operations

// translateDoneMsg is sent when the language model returned a command
// plan for the user request
type translateDoneMsg struct {
	request  string
	cmds     []command.Command
	duration time.Duration
	err      error
}

// insightAnswerMsg is sent when the follow-up answer for an
// aggregation insight arrives
type insightAnswerMsg struct {
	answer   string
	duration time.Duration
	err      error
}

// modelsLoadedMsg is sent when the provider model list is loaded
type modelsLoadedMsg struct {
	models []translate.ModelInfo
	err    error
}

// providerStatusMsg is sent when the provider health check returns
type providerStatusMsg struct {
	online bool
	err    error
}

// tickMsg is used for periodic status updates
type tickMsg time.Time
