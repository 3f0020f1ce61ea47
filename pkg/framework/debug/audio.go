package debug

import (
	"fmt"
	"math"
	"strings"
)

type sample interface {
	~float32 | ~float64
}

// AudioAnalyzer checks rendered buffers for clipping, DC offset, silence
// and invalid samples.
type AudioAnalyzer struct {
	ClippingThreshold float64
	DCThreshold       float64
	SilenceThreshold  float64
}

// NewAudioAnalyzer creates an analyzer with default thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float64
	RMS            float64
	DC             float64
	ClippedSamples int
	Silent         bool
	NaNCount       int
	InfCount       int
	ZeroCrossings  int
}

// Clipping reports whether any sample reached the clipping threshold
func (r AnalysisResult) Clipping() bool { return r.ClippedSamples > 0 }

// Analyze inspects every sample of buffer. Non-finite samples are counted
// and excluded from the statistics.
func Analyze[T sample](a *AudioAnalyzer, buffer []T) AnalysisResult {
	result := AnalysisResult{Samples: len(buffer)}
	var sumSquares, dcSum float64
	var finite int
	var last float64

	for _, s := range buffer {
		v := float64(s)
		switch {
		case math.IsNaN(v):
			result.NaNCount++
			continue
		case math.IsInf(v, 0):
			result.InfCount++
			continue
		}
		abs := math.Abs(v)
		result.Peak = max(result.Peak, abs)
		if abs >= a.ClippingThreshold {
			result.ClippedSamples++
		}
		if finite > 0 && (last < 0) != (v < 0) {
			result.ZeroCrossings++
		}
		sumSquares += v * v
		dcSum += v
		last = v
		finite++
	}

	if finite > 0 {
		result.RMS = math.Sqrt(sumSquares / float64(finite))
		result.DC = dcSum / float64(finite)
	}
	result.Silent = result.RMS < a.SilenceThreshold
	return result
}

// Issues lists the problems found in r, prefixed with name.
func (a *AudioAnalyzer) Issues(r AnalysisResult, name string) []string {
	var issues []string
	if r.NaNCount > 0 || r.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d NaN and %d infinite samples", name, r.NaNCount, r.InfCount))
	}
	if r.Clipping() {
		issues = append(issues, fmt.Sprintf("%s: clipping (%d samples, peak %.3f)", name, r.ClippedSamples, r.Peak))
	}
	if math.Abs(r.DC) > a.DCThreshold {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.3f", name, r.DC))
	}
	return issues
}

// CompareBuffers reports how far b deviates from a.
func CompareBuffers[T sample](a, b []T, tolerance float64) string {
	if len(a) != len(b) {
		return fmt.Sprintf("Buffer length mismatch: %d vs %d", len(a), len(b))
	}

	var maxDiff float64
	var maxIndex, count int
	for i := range a {
		diff := math.Abs(float64(a[i]) - float64(b[i]))
		if diff <= tolerance {
			continue
		}
		count++
		if diff > maxDiff {
			maxDiff, maxIndex = diff, i
		}
	}
	if count == 0 {
		return "Buffers are identical within tolerance"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Buffer differences:\n")
	fmt.Fprintf(&sb, "  Samples different: %d / %d\n", count, len(a))
	fmt.Fprintf(&sb, "  Max difference: %.6f at sample %d", maxDiff, maxIndex)
	return sb.String()
}

// LogBufferStats logs buffer statistics at Debug and issues at Warn.
func (l *Logger) LogBufferStats(name string, r AnalysisResult, a *AudioAnalyzer) {
	l.Debug("buffer stats", "buffer", name, "samples", r.Samples,
		"peak", fmt.Sprintf("%.3f", r.Peak), "rms", fmt.Sprintf("%.3f", r.RMS), "silent", r.Silent)
	for _, issue := range a.Issues(r, name) {
		l.Warn(issue)
	}
}
