// Package analysis extracts a byte-scaled spectrum, band energy and waveform
// from mono audio, the way a browser AnalyserNode does.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Band is a named frequency range in Hz.
type Band struct {
	Name string
	Low  float64
	High float64
}

var (
	Bass    = Band{"bass", 20, 140}
	LowMid  = Band{"lowMid", 140, 400}
	Mid     = Band{"mid", 400, 2600}
	HighMid = Band{"highMid", 2600, 5200}
	Treble  = Band{"treble", 5200, 14000}

	Bands = []Band{Bass, LowMid, Mid, HighMid, Treble}
)

type Analyzer struct {
	bins       int
	size       int
	smoothing  float64
	sampleRate float64

	fft      *fourier.FFT
	window   []float64
	input    []float64
	coeffs   []complex128
	smoothed []float64
	spectrum []float64
	waveform []float64
}

// New returns an analyzer producing bins spectrum values. The FFT size is 2*bins.
func New(bins int, smoothing, sampleRate float64) *Analyzer {
	size := 2 * bins
	window := make([]float64, size)
	for i := range window {
		// Blackman
		x := 2 * math.Pi * float64(i) / float64(size)
		window[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return &Analyzer{
		bins:       bins,
		size:       size,
		smoothing:  smoothing,
		sampleRate: sampleRate,
		fft:        fourier.NewFFT(size),
		window:     window,
		input:      make([]float64, size),
		coeffs:     make([]complex128, size/2+1),
		smoothed:   make([]float64, bins),
		spectrum:   make([]float64, bins),
		waveform:   make([]float64, bins),
	}
}

func (a *Analyzer) Bins() int { return a.bins }

// FFTSize is the number of samples Analyze looks at.
func (a *Analyzer) FFTSize() int { return a.size }

func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// SetSampleRate changes the rate used to map frequencies to bins.
func (a *Analyzer) SetSampleRate(sr float64) { a.sampleRate = sr }

// Analyze consumes the most recent FFTSize mono samples and returns the
// spectrum scaled to 0..255. Shorter input is treated as preceded by silence.
// The returned slice is reused by the next call.
func (a *Analyzer) Analyze(mono []float64) []float64 {
	if len(mono) > a.size {
		mono = mono[len(mono)-a.size:]
	}
	pad := a.size - len(mono)
	for i := 0; i < pad; i++ {
		a.input[i] = 0
	}
	copy(a.input[pad:], mono)

	wstart := a.size - a.bins
	copy(a.waveform, a.input[wstart:])

	for i, v := range a.input {
		a.input[i] = v * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	scale := 255 / (maxDecibels - minDecibels)
	for k := 0; k < a.bins; k++ {
		mag := cmplx.Abs(a.coeffs[k]) / float64(a.size)
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag

		v := 0.0
		if a.smoothed[k] > 0 {
			db := 20 * math.Log10(a.smoothed[k])
			v = (db - minDecibels) * scale
		}
		a.spectrum[k] = clamp(math.Floor(v), 0, 255)
	}
	return a.spectrum
}

// Spectrum returns the result of the last Analyze.
func (a *Analyzer) Spectrum() []float64 { return a.spectrum }

// Waveform returns the last Bins mono samples seen by Analyze.
func (a *Analyzer) Waveform() []float64 { return a.waveform }

// Energy returns the mean spectrum value between two frequencies.
func (a *Analyzer) Energy(lowHz, highHz float64) float64 {
	nyquist := a.sampleRate / 2
	if nyquist <= 0 {
		return 0
	}
	lo := int(math.Round(lowHz / nyquist * float64(a.bins)))
	hi := int(math.Round(highHz / nyquist * float64(a.bins)))
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = clampInt(lo, 0, a.bins-1)
	hi = clampInt(hi, 0, a.bins-1)

	total := 0.0
	for i := lo; i <= hi; i++ {
		total += a.spectrum[i]
	}
	return total / float64(hi-lo+1)
}

func (a *Analyzer) BandEnergy(b Band) float64 {
	return a.Energy(b.Low, b.High)
}

// Reset drops the smoothing history.
func (a *Analyzer) Reset() {
	for i := range a.smoothed {
		a.smoothed[i] = 0
		a.spectrum[i] = 0
		a.waveform[i] = 0
	}
}

// MapRange maps v linearly from [inLo, inHi] to [outLo, outHi] without clamping.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
