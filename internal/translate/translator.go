// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     translate
// Description: Natural language to command plan translation
// Author:      Mike Stoffels
// Created:     2026-02-15
// License:     MIT
// ============================================================================

package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
	"github.com/msto63/mTW/pkg/core/logging"
)

// Translator turns user requests into command plans via an LLM provider
type Translator struct {
	provider    Provider
	model       string
	temperature float64
	maxTokens   int
	cache       *responseCache
	logger      *logging.Logger
}

// Options configures translator behavior
type Options struct {
	Provider    Provider
	Model       string
	Temperature float64
	MaxTokens   int
	CacheSize   int // 0 = default size, negative disables the cache
	CacheTTL    time.Duration
	Logger      *logging.Logger
}

// New creates a new translator
func New(opts Options) (*Translator, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("Provider is required")
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.1
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1000
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetDefault()
	}

	t := &Translator{
		provider:    opts.Provider,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      logger.WithField("component", "translate"),
	}
	if opts.CacheSize >= 0 {
		t.cache = newResponseCache(opts.CacheSize, opts.CacheTTL)
	}
	return t, nil
}

// Provider returns the configured provider
func (t *Translator) Provider() Provider {
	return t.provider
}

// Model returns the configured model name, empty for provider default
func (t *Translator) Model() string {
	return t.model
}

// Translate converts a natural-language request into a command plan.
// Model output that is not decodable as commands becomes a single
// error-marker command so the engine reports it like any other failed
// step; a Go error is returned only when the provider call itself fails
// or the reply is valid JSON but an invalid command.
func (t *Translator) Translate(ctx context.Context, request string, tc table.Context, history []Message) ([]command.Command, error) {
	prompt := buildPrompt(request, tc, history)
	key := cacheKey(t.model, systemPrompt, prompt)

	if t.cache != nil {
		if raw, ok := t.cache.get(key); ok {
			t.logger.Debug("Translation cache hit", logging.Fields{"request": request})
			return t.decodeResponse(raw)
		}
	}

	resp, err := t.provider.Chat(ctx, &ChatRequest{
		Messages:    []Message{{Role: "user", Content: prompt}},
		Model:       t.model,
		MaxTokens:   t.maxTokens,
		Temperature: t.temperature,
		System:      systemPrompt,
	})
	if err != nil {
		return nil, apperror.Wrap(err, "translation request failed").
			WithCode(apperror.CodeTranslationFailed).
			WithDetail("provider", t.provider.Name())
	}

	raw := strings.TrimSpace(resp.Message.Content)
	t.logger.Debug("Translation response received", logging.Fields{
		"provider":     t.provider.Name(),
		"model":        resp.Model,
		"outputTokens": resp.OutputTokens,
	})

	cmds, err := t.decodeResponse(raw)
	if err != nil {
		return nil, err
	}
	// Error markers stay uncached so a retry reaches the model again
	if t.cache != nil && (len(cmds) != 1 || cmds[0].Action != command.ActionError) {
		t.cache.set(key, raw)
	}
	return cmds, nil
}

// decodeResponse turns raw model text into commands. It tries the
// fence-stripped reply first, then the widest bracketed array and
// object slices, mirroring how models wrap JSON into prose.
func (t *Translator) decodeResponse(raw string) ([]command.Command, error) {
	candidates := []string{stripFences(raw)}
	if arr, ok := bracketSlice(raw, '[', ']'); ok {
		candidates = append(candidates, arr)
	}
	if obj, ok := bracketSlice(raw, '{', '}'); ok {
		candidates = append(candidates, obj)
	}

	for _, cand := range candidates {
		cmds, err := command.ParseJSON([]byte(cand))
		if err == nil {
			return cmds, nil
		}
		if apperror.HasCode(err, apperror.CodeEmptyPlan) {
			return errorMarker("LLM returned empty array", ""), nil
		}
		if apperror.HasCode(err, apperror.CodeParseFailure) {
			continue
		}
		// Valid JSON, invalid command: surface as a real error
		return nil, err
	}

	return errorMarker("Failed to parse LLM response", raw), nil
}

// AnswerInsight answers a data question directly, without producing a
// command
func (t *Translator) AnswerInsight(ctx context.Context, question string, tc table.Context, stats string) (string, error) {
	resp, err := t.provider.Chat(ctx, &ChatRequest{
		Messages:    []Message{{Role: "user", Content: buildInsightPrompt(question, tc, stats)}},
		Model:       t.model,
		MaxTokens:   t.maxTokens,
		Temperature: t.temperature,
		System:      insightSystemPrompt,
	})
	if err != nil {
		return "", apperror.Wrap(err, "insight request failed").
			WithCode(apperror.CodeTranslationFailed).
			WithDetail("provider", t.provider.Name())
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// CacheStats returns translation cache hit/miss counters. A disabled
// cache reports zero for both.
func (t *Translator) CacheStats() (hits, misses int64) {
	if t.cache == nil {
		return 0, 0
	}
	return t.cache.stats()
}

func errorMarker(message, raw string) []command.Command {
	return []command.Command{{
		Action: command.ActionError,
		Params: command.ErrorParams{Message: message, RawResponse: raw},
	}}
}

// stripFences removes a markdown code fence around the reply
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// bracketSlice returns the widest substring from the first open bracket
// to the last close bracket
func bracketSlice(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, close)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
