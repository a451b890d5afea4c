package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/RogerChu8/voiceRecorder-app/internal/metrics"
	"github.com/RogerChu8/voiceRecorder-app/internal/pronounce"
	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

const gaugeWidth = 30

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var referenceText string

	cmd := &cobra.Command{
		Use:   "score <recording.wav>",
		Short: "Compute quality metrics for a recording",
		Long: "Decode the recording and print its peak level, RMS level, SNR estimate, " +
			"and clipping flag as gauges. When pronunciation scoring is configured and " +
			"--text is given, the external assessment is included.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read recording: %w", err)
			}
			wf, err := wavecodec.Decode(audio)
			if err != nil {
				return err
			}

			scorer, err := pronounce.NewFromConfig(cfg.Pronunciation)
			if err != nil {
				return err
			}
			engine := metrics.NewEngine(scorerOrNil(scorer), cfg.Metrics.SNRWindowSeconds, logger)
			report := engine.Assess(cmd.Context(), wf, audio, referenceText)

			printReport(cmd, wf, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&referenceText, "text", "", "Reference text for pronunciation scoring")
	return cmd
}

// scorerOrNil keeps a disabled client from becoming a non-nil interface
// holding a nil pointer.
func scorerOrNil(client *pronounce.Client) pronounce.Scorer {
	if client == nil {
		return nil
	}
	return client
}

func printReport(cmd *cobra.Command, wf *wavecodec.Waveform, report metrics.Report) {
	out := cmd.OutOrStdout()
	colored := colorOutput()

	fmt.Fprintf(out, "%.1fs, %d Hz, %d channel(s), %d-bit\n",
		wf.Duration(), wf.SampleRate, wf.Channels, wf.BitsPerSample)
	for _, gauge := range metrics.StandardGauges(report) {
		fmt.Fprintln(out, gauge.Render(gaugeWidth, colored))
	}

	if report.Clipping {
		fmt.Fprintln(out, "WARNING: clipping detected")
	}
	if math.IsInf(report.SNRDb, 1) {
		fmt.Fprintln(out, "Note: noise floor is silent; SNR is unbounded")
	}
	if report.PronunciationErr != "" {
		fmt.Fprintf(out, "Pronunciation scoring failed: %s\n", report.PronunciationErr)
	}
}
