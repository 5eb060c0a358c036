// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     stt
// Description: Whisper server client for audio transcription
// Author:      Mike Stoffels
// Created:     2026-02-17
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/msto63/mTW/pkg/core/apperror"
	"github.com/msto63/mTW/pkg/core/logging"
)

// WhisperClient implements the Transcriber interface against a local
// whisper.cpp server
type WhisperClient struct {
	baseURL    string
	language   string
	sampleRate int
	client     *http.Client
	logger     *logging.Logger
}

// WhisperConfig holds whisper server client configuration
type WhisperConfig struct {
	// BaseURL is the whisper server URL (e.g., "http://localhost:8080")
	BaseURL string

	// Language is the target language (e.g., "de", "en", "auto")
	Language string

	// SampleRate is the audio sample rate
	SampleRate int

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultWhisperConfig returns default whisper client configuration
func DefaultWhisperConfig() WhisperConfig {
	return WhisperConfig{
		BaseURL:    "http://localhost:8080",
		Language:   "de",
		SampleRate: 16000,
		Timeout:    60 * time.Second,
	}
}

// NewWhisperClient creates a new whisper server client
func NewWhisperClient(cfg WhisperConfig) *WhisperClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultWhisperConfig().BaseURL
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultWhisperConfig().SampleRate
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultWhisperConfig().Timeout
	}

	return &WhisperClient{
		baseURL:    cfg.BaseURL,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logging.New("whisper-stt"),
	}
}

// Transcribe converts audio samples to text
func (c *WhisperClient) Transcribe(ctx context.Context, samples []float32) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples provided")
	}
	if len(samples) < c.sampleRate/2 {
		return nil, apperror.New("Recording too short (minimum 0.5 seconds)").
			WithCode(apperror.CodeInvalidInput)
	}

	return c.transcribeWAV(ctx, encodeWAV(samples, c.sampleRate))
}

// TranscribeFile transcribes audio from a WAV file
func (c *WhisperClient) TranscribeFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to read audio file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}

	return c.transcribeWAV(ctx, data)
}

// transcribeWAV sends WAV data to the whisper server
func (c *WhisperClient) transcribeWAV(ctx context.Context, wavData []byte) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(wavData); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	if c.language != "" && c.language != "auto" {
		if err := writer.WriteField("language", c.language); err != nil {
			return nil, fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("failed to write response_format field: %w", err)
	}
	if err := writer.WriteField("temperature", "0"); err != nil {
		return nil, fmt.Errorf("failed to write temperature field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := c.baseURL + "/inference"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug("Sending transcription request", logging.Fields{
		"url":  url,
		"size": len(wavData),
	})
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, "transcription request failed").
			WithCode(apperror.CodeNetworkError)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Newf("API error (status %d): %s", resp.StatusCode, string(body)).
			WithCode(apperror.CodeNetworkError)
	}

	var apiResp whisperResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug("Transcription complete", logging.Fields{
		"duration":    time.Since(start),
		"text_length": len(apiResp.Text),
		"language":    apiResp.Language,
	})

	text := strings.TrimSpace(apiResp.Text)
	if len(text) < 2 {
		return nil, apperror.New("No speech detected in recording").
			WithCode(apperror.CodeInvalidInput)
	}

	result := &Result{
		Text:       text,
		Language:   apiResp.Language,
		Duration:   apiResp.Duration,
		Confidence: 0.9, // whisper does not report overall confidence
	}
	if result.Language == "" {
		result.Language = c.language
	}

	for _, seg := range apiResp.Segments {
		result.Segments = append(result.Segments, Segment{
			Text:  strings.TrimSpace(seg.Text),
			Start: seg.Start,
			End:   seg.End,
		})
	}

	return result, nil
}

// HealthCheck checks if the whisper server is reachable
func (c *WhisperClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperror.Wrap(err, "whisper server not reachable").
			WithCode(apperror.CodeProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperror.Newf("whisper server returned status %d", resp.StatusCode).
			WithCode(apperror.CodeProviderUnavailable)
	}

	return nil
}

// SetLanguage updates the transcription language
func (c *WhisperClient) SetLanguage(language string) {
	c.language = language
}

// Language returns the current language
func (c *WhisperClient) Language() string {
	return c.language
}

// Close releases resources
func (c *WhisperClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// whisperResponse is the verbose_json API response structure
type whisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float32          `json:"duration"`
	Segments []whisperSegment `json:"segments,omitempty"`
}

type whisperSegment struct {
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Start float32 `json:"start"`
	End   float32 `json:"end"`
}
