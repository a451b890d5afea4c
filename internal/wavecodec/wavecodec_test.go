package wavecodec_test

import (
	"errors"
	"math"
	"testing"

	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &wavecodec.Waveform{
		SampleRate:    16000,
		Channels:      1,
		BitsPerSample: 16,
		Samples:       []int{0, 1000, -1000, 32767, -32768},
	}

	data, err := wavecodec.Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := wavecodec.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.SampleRate != original.SampleRate {
		t.Fatalf("sample rate = %d, want %d", decoded.SampleRate, original.SampleRate)
	}
	if decoded.Channels != original.Channels {
		t.Fatalf("channels = %d, want %d", decoded.Channels, original.Channels)
	}
	if decoded.BitsPerSample != original.BitsPerSample {
		t.Fatalf("bits = %d, want %d", decoded.BitsPerSample, original.BitsPerSample)
	}
	if len(decoded.Samples) != len(original.Samples) {
		t.Fatalf("sample count = %d, want %d", len(decoded.Samples), len(original.Samples))
	}
	for i, sample := range original.Samples {
		if decoded.Samples[i] != sample {
			t.Fatalf("sample[%d] = %d, want %d", i, decoded.Samples[i], sample)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"empty":      nil,
		"short":      []byte("RIFF"),
		"not riff":   []byte("XXXX\x00\x00\x00\x00WAVEmore-bytes-here"),
		"not wave":   []byte("RIFF\x00\x00\x00\x00XXXXmore-bytes-here"),
		"no chunks":  []byte("RIFF\x04\x00\x00\x00WAVE"),
		"text bytes": []byte("this is not audio at all, just text padding"),
	}
	for name, data := range cases {
		if _, err := wavecodec.Decode(data); err == nil {
			t.Errorf("%s: expected decode error", name)
		} else {
			var decodeErr *wavecodec.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("%s: error %v is not a DecodeError", name, err)
			}
		}
	}
}

func TestDecodeRejectsNonPCM(t *testing.T) {
	wf := &wavecodec.Waveform{SampleRate: 8000, Channels: 1, BitsPerSample: 16, Samples: []int{0, 0}}
	data, err := wavecodec.Encode(wf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Patch the format tag inside the fmt chunk to IEEE float (3).
	data[20] = 3
	if _, err := wavecodec.Decode(data); err == nil {
		t.Fatal("expected decode error for non-PCM format tag")
	}
}

func TestDuration(t *testing.T) {
	wf := &wavecodec.Waveform{
		SampleRate:    8000,
		Channels:      2,
		BitsPerSample: 16,
		Samples:       make([]int, 16000), // 8000 frames of stereo
	}
	if got := wf.Duration(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("Duration = %v, want 1.0", got)
	}

	wf.SampleRate = 0
	if got := wf.Duration(); got != 0 {
		t.Fatalf("Duration with zero rate = %v, want 0", got)
	}
}

func TestDecode24BitSignExtension(t *testing.T) {
	wf := &wavecodec.Waveform{
		SampleRate:    44100,
		Channels:      1,
		BitsPerSample: 24,
		Samples:       []int{-1, -8388608, 8388607, 12345},
	}
	data, err := wavecodec.Encode(wf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := wavecodec.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, want := range wf.Samples {
		if decoded.Samples[i] != want {
			t.Fatalf("sample[%d] = %d, want %d", i, decoded.Samples[i], want)
		}
	}
}

func TestMaxMagnitude(t *testing.T) {
	cases := []struct {
		bits int
		want float64
	}{
		{8, 128},
		{16, 32768},
		{24, 8388608},
		{32, 2147483648},
	}
	for _, tc := range cases {
		wf := &wavecodec.Waveform{BitsPerSample: tc.bits}
		if got := wf.MaxMagnitude(); got != tc.want {
			t.Errorf("MaxMagnitude(%d bits) = %v, want %v", tc.bits, got, tc.want)
		}
	}
}
