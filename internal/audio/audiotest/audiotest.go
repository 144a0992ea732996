// Package audiotest writes small synthetic audio files for tests.
package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

const SampleRate = beep.SampleRate(44100)

// Sine returns a stereo sine streamer of n samples at freq Hz and the given amplitude.
func Sine(freq, amp float64, n int) beep.Streamer {
	return SineAt(SampleRate, freq, amp, n)
}

// SineAt is Sine for a sample rate other than SampleRate.
func SineAt(sr beep.SampleRate, freq, amp float64, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			v := amp * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, true
	})
}

// WriteSineWAV writes a 16-bit stereo WAV with a sine tone into a temp dir and returns its path.
func WriteSineWAV(t testing.TB, freq float64, d time.Duration) string {
	t.Helper()
	return WriteSineWAVAt(t, SampleRate, freq, d)
}

// WriteSineWAVAt is WriteSineWAV at sample rate sr.
func WriteSineWAVAt(t testing.TB, sr beep.SampleRate, freq float64, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, SineAt(sr, freq, 0.8, sr.N(d)), format); err != nil {
		t.Fatal(err)
	}
	return path
}
