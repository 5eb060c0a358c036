package stt

import (
	"encoding/binary"
	"testing"
)

func TestEncodePCM(t *testing.T) {
	pcm := encodePCM([]float32{0, 1.0, -1.0, 0.5, 2.0, -2.0})

	if len(pcm) != 12 {
		t.Fatalf("len(pcm) = %d, want 12", len(pcm))
	}

	// Out-of-range samples clamp to full scale
	want := []int16{0, 32767, -32767, 16383, 32767, -32767}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestEncodeWAV(t *testing.T) {
	samples := make([]float32, 100)
	wav := encodeWAV(samples, 16000)

	if len(wav) != 44+200 {
		t.Fatalf("len(wav) = %d, want 244", len(wav))
	}

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE header")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Error("missing fmt/data chunks")
	}

	if got := binary.LittleEndian.Uint32(wav[4:]); got != 236 {
		t.Errorf("RIFF size = %d, want 236", got)
	}
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != 16000 {
		t.Errorf("sample rate = %d, want 16000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:]); got != 32000 {
		t.Errorf("byte rate = %d, want 32000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:]); got != 200 {
		t.Errorf("data size = %d, want 200", got)
	}
}
