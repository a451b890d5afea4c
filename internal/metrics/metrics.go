package metrics

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/RogerChu8/voiceRecorder-app/internal/logging"
	"github.com/RogerChu8/voiceRecorder-app/internal/pronounce"
	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

// DefaultSNRWindowSeconds is the window length used for the noise-floor
// estimate when no configuration is supplied.
const DefaultSNRWindowSeconds = 0.1

// Report holds the metrics computed for one recording. Level fields may be
// ±Inf, and SNRDb is NaN for a zero-length waveform. Pronunciation is nil
// when scoring was skipped or failed; PronunciationErr carries the failure.
type Report struct {
	PeakDb           float64
	RMSDb            float64
	SNRDb            float64
	Clipping         bool
	Pronunciation    *pronounce.Assessment
	PronunciationErr string
}

// Compute derives the objective metrics from a decoded waveform.
// Multi-channel audio is reduced to its first channel. The SNR noise floor
// is the minimum-RMS window of the given length, a crude estimate that
// treats any pause in clean speech as noise.
func Compute(wf *wavecodec.Waveform, snrWindowSeconds float64) Report {
	samples := normalizedFirstChannel(wf)

	var report Report
	report.PeakDb = levelDb(peakMagnitude(samples))
	report.RMSDb = levelDb(rms(samples))
	report.SNRDb = snrDb(samples, wf.SampleRate, snrWindowSeconds)
	report.Clipping = hasClipping(samples)
	return report
}

// normalizedFirstChannel extracts channel zero and scales it into [-1, 1].
func normalizedFirstChannel(wf *wavecodec.Waveform) []float64 {
	channels := wf.Channels
	if channels < 1 {
		channels = 1
	}
	scale := wf.MaxMagnitude()
	if scale == 0 {
		scale = 1
	}

	out := make([]float64, 0, len(wf.Samples)/channels)
	for i := 0; i < len(wf.Samples); i += channels {
		out = append(out, float64(wf.Samples[i])/scale)
	}
	return out
}

func peakMagnitude(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if mag := math.Abs(s); mag > peak {
			peak = mag
		}
	}
	return peak
}

// rms is the root mean square of the slice; 0 for an empty slice.
func rms(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return floats.Norm(samples, 2) / math.Sqrt(float64(len(samples)))
}

// levelDb converts a linear magnitude to decibels; -Inf at exactly 0.
func levelDb(magnitude float64) float64 {
	if magnitude == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(magnitude)
}

// snrDb estimates signal-to-noise by taking the minimum-RMS window as the
// noise floor. NaN for a zero-length input, +Inf when the floor is silent.
func snrDb(samples []float64, sampleRate int, windowSeconds float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	if windowSeconds <= 0 {
		windowSeconds = DefaultSNRWindowSeconds
	}
	window := int(windowSeconds * float64(sampleRate))
	if window < 1 {
		window = 1
	}

	noise := math.Inf(1)
	for start := 0; start < len(samples); start += window {
		end := start + window
		if end > len(samples) {
			end = len(samples)
		}
		if windowRms := rms(samples[start:end]); windowRms < noise {
			noise = windowRms
		}
	}

	if noise == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(rms(samples)/noise)
}

func hasClipping(samples []float64) bool {
	for _, s := range samples {
		if math.Abs(s) >= 1.0 {
			return true
		}
	}
	return false
}

// Engine couples metric computation with optional pronunciation scoring.
type Engine struct {
	scorer           pronounce.Scorer
	snrWindowSeconds float64
	logger           *slog.Logger
}

// NewEngine creates an engine. scorer may be nil, in which case Assess only
// computes the objective metrics.
func NewEngine(scorer pronounce.Scorer, snrWindowSeconds float64, logger *slog.Logger) *Engine {
	if snrWindowSeconds <= 0 {
		snrWindowSeconds = DefaultSNRWindowSeconds
	}
	return &Engine{
		scorer:           scorer,
		snrWindowSeconds: snrWindowSeconds,
		logger:           logging.NewComponentLogger(logger, "metrics"),
	}
}

// Assess computes the objective metrics and, when a scorer is configured
// and the reference text is non-empty, requests a pronunciation score for
// the raw audio bytes. Scoring failures are captured on the report.
func (e *Engine) Assess(ctx context.Context, wf *wavecodec.Waveform, rawAudio []byte, referenceText string) Report {
	report := Compute(wf, e.snrWindowSeconds)

	referenceText = strings.TrimSpace(referenceText)
	if e.scorer == nil || referenceText == "" {
		return report
	}

	start := time.Now()
	assessment, err := e.scorer.Score(ctx, rawAudio, referenceText)
	latency := time.Since(start)
	if err != nil {
		e.logger.Warn("pronunciation scoring failed",
			logging.Error(err), logging.Duration("latency", latency))
		report.PronunciationErr = err.Error()
		return report
	}
	e.logger.Debug("pronunciation scored", logging.Duration("latency", latency))
	report.Pronunciation = &assessment
	return report
}
