// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     translate
// Description: LLM provider abstraction for command translation
// Author:      Mike Stoffels
// Created:     2026-02-15
// License:     MIT
// ============================================================================

// Package translate turns natural-language requests into executable
// command plans. A Provider delivers raw model output, the Translator
// wraps prompt building, response cleanup and command decoding around
// it.
package translate

import (
	"context"
	"time"
)

// Provider represents an LLM backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Chat performs a chat completion
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ListModels lists available models
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// HealthCheck checks if the provider is reachable
	HealthCheck(ctx context.Context) error
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// ChatRequest represents a chat request
type ChatRequest struct {
	Messages    []Message
	Model       string
	MaxTokens   int
	Temperature float64
	System      string
}

// ChatResponse represents a chat response
type ChatResponse struct {
	Message       Message
	Model         string
	PromptTokens  int
	OutputTokens  int
	TotalDuration time.Duration
}

// ModelInfo represents model information
type ModelInfo struct {
	Name          string
	Size          int64
	ParameterSize string
	Family        string
	Provider      string
}

// ProviderType represents the type of provider
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
)

// ParseProviderModel parses a model string like "openai:gpt-4o-mini"
// into provider and model. Strings without a known prefix default to
// Ollama, so plain local model names keep working.
func ParseProviderModel(modelStr string) (ProviderType, string) {
	for i, c := range modelStr {
		if c == ':' {
			switch modelStr[:i] {
			case "openai":
				return ProviderOpenAI, modelStr[i+1:]
			case "groq":
				return ProviderGroq, modelStr[i+1:]
			case "ollama":
				return ProviderOllama, modelStr[i+1:]
			}
			break
		}
	}
	return ProviderOllama, modelStr
}
