// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     stt
// Description: Speech-to-text interface and audio encoding helpers
// Author:      Mike Stoffels
// Created:     2026-02-17
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/binary"
)

// Transcriber is the interface for speech-to-text engines
type Transcriber interface {
	// Transcribe converts audio samples to text
	Transcribe(ctx context.Context, samples []float32) (*Result, error)

	// TranscribeFile transcribes audio from a file
	TranscribeFile(ctx context.Context, path string) (*Result, error)

	// Close releases resources
	Close() error
}

// Result holds the transcription result
type Result struct {
	// Text is the transcribed text
	Text string

	// Language is the detected language
	Language string

	// Confidence is the confidence score (0-1)
	Confidence float32

	// Duration is the audio duration in seconds
	Duration float32

	// Segments are the individual segments with timestamps
	Segments []Segment
}

// Segment is a transcription segment with timing
type Segment struct {
	// Text is the segment text
	Text string

	// Start is the start time in seconds
	Start float32

	// End is the end time in seconds
	End float32
}

// encodePCM converts float32 samples to 16-bit little-endian PCM.
// Samples outside [-1, 1] are clamped.
func encodePCM(samples []float32) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*32767)))
	}
	return buf
}

// encodeWAV converts float32 samples to an in-memory mono 16-bit PCM WAV file
func encodeWAV(samples []float32, sampleRate int) []byte {
	pcm := encodePCM(samples)

	numChannels := uint16(1)
	bitsPerSample := uint16(16)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := uint32(len(pcm))

	var buf bytes.Buffer

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16)) // chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // audio format (PCM)
	binary.Write(&buf, binary.LittleEndian, numChannels)
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, bitsPerSample)

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}
