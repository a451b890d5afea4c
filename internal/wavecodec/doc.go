// Package wavecodec reads and writes RIFF/WAVE containers holding PCM
// audio.
//
// Decoding produces integer samples plus the container parameters the
// metrics and reconciliation engines need (sample rate, channel count,
// frame count). Encoding is the exact inverse; accepted recordings are
// persisted as captured, so the codec never resamples or re-quantizes.
package wavecodec
