// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     stt
// Description: WebSocket client for streaming transcription
// Author:      Mike Stoffels
// Created:     2026-02-17
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/mTW/pkg/core/logging"
)

// StreamClient streams audio to a transcription daemon over WebSocket.
// Audio goes out as binary 16-bit PCM chunks, transcription updates come
// back as JSON messages.
type StreamClient struct {
	mu       sync.RWMutex
	url      string
	timeout  time.Duration
	conn     *websocket.Conn
	onResult func(text string, final bool)
	running  bool
	logger   *logging.Logger
}

// streamMessage is one transcription update from the daemon
type streamMessage struct {
	Type string `json:"type"` // partial or final
	Text string `json:"text"`
}

// StreamConfig holds streaming client configuration
type StreamConfig struct {
	// URL is the WebSocket endpoint (e.g., "ws://localhost:8080/stream")
	URL string

	// HandshakeTimeout bounds the connection handshake
	HandshakeTimeout time.Duration
}

// DefaultStreamConfig returns default streaming configuration
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		URL:              "ws://localhost:8080/stream",
		HandshakeTimeout: 10 * time.Second,
	}
}

// NewStreamClient creates a new streaming transcription client. The
// onResult callback receives every partial and final transcription text.
func NewStreamClient(cfg StreamConfig, onResult func(text string, final bool)) *StreamClient {
	if cfg.URL == "" {
		cfg.URL = DefaultStreamConfig().URL
	}
	if cfg.HandshakeTimeout == 0 {
		cfg.HandshakeTimeout = DefaultStreamConfig().HandshakeTimeout
	}

	return &StreamClient{
		url:      cfg.URL,
		timeout:  cfg.HandshakeTimeout,
		onResult: onResult,
		logger:   logging.New("stream-stt"),
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (c *StreamClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.timeout,
	}

	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.conn = conn
	c.running = true
	go c.readLoop(conn)

	return nil
}

// SendAudio sends one chunk of samples as binary PCM
func (c *StreamClient) SendAudio(samples []float32) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, encodePCM(samples)); err != nil {
		return fmt.Errorf("failed to send audio: %w", err)
	}
	return nil
}

// readLoop delivers transcription updates until the connection closes
func (c *StreamClient) readLoop(conn *websocket.Conn) {
	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			c.mu.RLock()
			running := c.running
			c.mu.RUnlock()
			if running {
				c.logger.Debug("Stream read ended", logging.Fields{"error": err.Error()})
			}
			return
		}

		switch msg.Type {
		case "partial":
			if c.onResult != nil {
				c.onResult(msg.Text, false)
			}
		case "final":
			if c.onResult != nil {
				c.onResult(msg.Text, true)
			}
		}
	}
}

// IsConnected returns whether the client is connected
func (c *StreamClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && c.running
}

// Close closes the WebSocket connection
func (c *StreamClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = false

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}

	return nil
}
