// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"testing"

	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

// WAVBytes encodes mono PCM16 samples into WAV container bytes.
func WAVBytes(t testing.TB, sampleRate int, samples []int) []byte {
	t.Helper()

	data, err := wavecodec.Encode(&wavecodec.Waveform{
		SampleRate:    sampleRate,
		Channels:      1,
		BitsPerSample: 16,
		Samples:       samples,
	})
	if err != nil {
		t.Fatalf("wavecodec.Encode: %v", err)
	}
	return data
}

// SilentWAV encodes frames of mono PCM16 silence.
func SilentWAV(t testing.TB, sampleRate, frames int) []byte {
	t.Helper()
	return WAVBytes(t, sampleRate, make([]int, frames))
}

// ConstantWAV encodes frames of mono PCM16 samples at a fixed value.
func ConstantWAV(t testing.TB, sampleRate, frames, value int) []byte {
	t.Helper()
	samples := make([]int, frames)
	for i := range samples {
		samples[i] = value
	}
	return WAVBytes(t, sampleRate, samples)
}
