// Package metrics computes objective quality metrics for a recording and
// maps them onto bounded, color-banded gauges.
//
// Compute is pure and never fails for decodable audio. Silence yields
// negative-infinity levels, a zero noise floor yields an infinite SNR, and
// a zero-length waveform yields a NaN SNR; the gauge layer clamps all of
// these to its displayable range. Pronunciation scoring is an optional
// external call handled by Engine; its failure is captured on the report,
// never propagated.
package metrics
