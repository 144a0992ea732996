package audio

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-wheels/internal/audio/audiotest"
)

// counter streams an increasing ramp so ordering is observable.
type counter struct{ next float64 }

func (c *counter) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.next, -c.next}
		c.next++
	}
	return len(samples), true
}

func (c *counter) Err() error { return nil }

func TestTapSnapshotOrder(t *testing.T) {
	tap := NewTap(&counter{}, 8)

	if got := tap.Snapshot(4); len(got) != 0 {
		t.Fatalf("Expected empty snapshot before streaming, got %d samples", len(got))
	}

	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf) // 10 samples through an 8-sample ring

	got := tap.Snapshot(3)
	want := []float64{7, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i][0] != want[i] || got[i][1] != -want[i] {
			t.Errorf("sample %d: want %v, got %v", i, want[i], got[i])
		}
	}

	if all := tap.Snapshot(100); len(all) != 8 || all[0][0] != 2 || all[7][0] != 9 {
		t.Errorf("Expected the full ring 2..9, got %v", all)
	}

	tap.Reset()
	if got := tap.Snapshot(4); len(got) != 0 {
		t.Errorf("Expected empty snapshot after reset, got %d", len(got))
	}
}

func TestMono(t *testing.T) {
	got := Mono([][2]float64{{1, 0}, {0.5, 0.5}, {-1, 1}})
	want := []float64{0.5, 0.5, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mono[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeWAV(t *testing.T) {
	path := audiotest.WriteSineWAV(t, 440, 250*time.Millisecond)

	s, format, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	defer s.Close()

	if format.SampleRate != audiotest.SampleRate {
		t.Errorf("Expected sample rate %d, got %d", audiotest.SampleRate, format.SampleRate)
	}
	if want := audiotest.SampleRate.N(250 * time.Millisecond); s.Len() != want {
		t.Errorf("Expected %d samples, got %d", want, s.Len())
	}
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "song.ogg"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	_, _, err = Decode(filepath.Join(t.TempDir(), "missing.WAV"))
	if err == nil || errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected open error for missing file, got %v", err)
	}
}

var _ beep.Streamer = (*Tap)(nil)
