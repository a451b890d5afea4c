package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Band is one colored threshold region of a gauge, covering the values from
// the previous band's boundary (or the gauge minimum) up to UpTo.
type Band struct {
	UpTo  float64
	Color text.Color
}

// Segment is a band resolved to its fraction of the gauge's span.
type Segment struct {
	Fraction float64
	Color    text.Color
}

// Gauge is a bounded scale with a positioned indicator. Value is already
// clamped into [Min, Max] and Position is its normalized offset, so any
// renderer can draw the gauge without re-deriving either.
type Gauge struct {
	Label    string
	Unit     string
	Value    float64
	Min      float64
	Max      float64
	Position float64
	Segments []Segment
}

// NewGauge clamps value into [min, max] and resolves the bands into span
// fractions. NaN and -Inf clamp to min; +Inf and over-range values clamp to
// max. Bands must be ordered by UpTo; the last band is extended to max.
func NewGauge(label string, value float64, unit string, min, max float64, bands []Band) Gauge {
	if max < min {
		max = min
	}
	switch {
	case math.IsNaN(value) || math.IsInf(value, -1) || value < min:
		value = min
	case math.IsInf(value, 1) || value > max:
		value = max
	}

	span := max - min
	position := 0.0
	if span > 0 {
		position = (value - min) / span
	}

	return Gauge{
		Label:    label,
		Unit:     unit,
		Value:    value,
		Min:      min,
		Max:      max,
		Position: position,
		Segments: resolveSegments(min, max, bands),
	}
}

func resolveSegments(min, max float64, bands []Band) []Segment {
	span := max - min
	if span <= 0 || len(bands) == 0 {
		return []Segment{{Fraction: 1, Color: text.FgWhite}}
	}

	segments := make([]Segment, 0, len(bands))
	prev := min
	for i, band := range bands {
		upper := band.UpTo
		if i == len(bands)-1 || upper > max {
			upper = max
		}
		if upper < prev {
			upper = prev
		}
		segments = append(segments, Segment{Fraction: (upper - prev) / span, Color: band.Color})
		prev = upper
	}
	return segments
}

// FormatValue renders the clamped value with its unit.
func (g Gauge) FormatValue() string {
	value := fmt.Sprintf("%.1f", g.Value)
	if g.Unit == "" {
		return value
	}
	return value + " " + g.Unit
}

const (
	gaugeBarRune     = '─'
	gaugePointerRune = '●'
)

// Render draws the gauge as a single line: label, clamped value, then a bar
// of the given width with the indicator placed at Position. Colors are
// applied per segment when colored is true.
func (g Gauge) Render(width int, colored bool) string {
	if width < 4 {
		width = 4
	}

	pointer := int(math.Round(g.Position * float64(width-1)))
	var bar strings.Builder
	cell := 0
	for _, segment := range g.Segments {
		cells := int(math.Round(segment.Fraction * float64(width)))
		for ; cells > 0 && cell < width; cells-- {
			bar.WriteString(renderCell(cell == pointer, segment.Color, colored))
			cell++
		}
	}
	// Rounding drift: pad with the last segment's color.
	for ; cell < width; cell++ {
		color := text.FgWhite
		if len(g.Segments) > 0 {
			color = g.Segments[len(g.Segments)-1].Color
		}
		bar.WriteString(renderCell(cell == pointer, color, colored))
	}

	return fmt.Sprintf("%-14s %10s  %s", g.Label, g.FormatValue(), bar.String())
}

func renderCell(isPointer bool, color text.Color, colored bool) string {
	r := gaugeBarRune
	if isPointer {
		r = gaugePointerRune
	}
	if !colored {
		return string(r)
	}
	return color.Sprint(string(r))
}

// StandardGauges maps a report onto the fixed display scales. Pronunciation
// gauges appear only when an assessment is present.
func StandardGauges(report Report) []Gauge {
	levelBands := []Band{
		{UpTo: -36, Color: text.FgYellow},
		{UpTo: -3, Color: text.FgGreen},
		{UpTo: 0, Color: text.FgRed},
	}
	snrBands := []Band{
		{UpTo: 15, Color: text.FgRed},
		{UpTo: 30, Color: text.FgYellow},
		{UpTo: 60, Color: text.FgGreen},
	}
	scoreBands := []Band{
		{UpTo: 60, Color: text.FgRed},
		{UpTo: 80, Color: text.FgYellow},
		{UpTo: 100, Color: text.FgGreen},
	}

	gauges := []Gauge{
		NewGauge("Peak", report.PeakDb, "dB", -60, 0, levelBands),
		NewGauge("RMS", report.RMSDb, "dB", -60, 0, levelBands),
		NewGauge("SNR", report.SNRDb, "dB", 0, 60, snrBands),
	}
	if report.Pronunciation != nil {
		gauges = append(gauges,
			NewGauge("Accuracy", report.Pronunciation.Accuracy, "", 0, 100, scoreBands),
			NewGauge("Fluency", report.Pronunciation.Fluency, "", 0, 100, scoreBands),
			NewGauge("Prosody", report.Pronunciation.Prosody, "", 0, 100, scoreBands),
		)
	}
	return gauges
}
