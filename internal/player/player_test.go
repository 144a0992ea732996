package player

import (
	"errors"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-wheels/internal/audio/audiotest"
)

type fakeOutput struct {
	inits   []beep.SampleRate
	playing []beep.Streamer
	initErr error
}

func (f *fakeOutput) Init(sr beep.SampleRate, bufferSize int) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits = append(f.inits, sr)
	return nil
}
func (f *fakeOutput) Play(s ...beep.Streamer) { f.playing = append(f.playing, s...) }
func (f *fakeOutput) Clear()                  { f.playing = nil }
func (f *fakeOutput) Lock()                   {}
func (f *fakeOutput) Unlock()                 {}

// pull drains n samples from whatever the output is playing.
func (f *fakeOutput) pull(n int) {
	buf := make([][2]float64, n)
	for _, s := range f.playing {
		s.Stream(buf)
	}
}

func TestLoadStartsPaused(t *testing.T) {
	out := &fakeOutput{}
	p := NewWithOutput(out, 1024)
	path := audiotest.WriteSineWAV(t, 110, 200*time.Millisecond)

	if err := p.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer p.Close()

	if !p.Loaded() || p.Playing() {
		t.Fatalf("Expected loaded and paused, got loaded=%v playing=%v", p.Loaded(), p.Playing())
	}
	if len(out.inits) != 1 || out.inits[0] != audiotest.SampleRate {
		t.Errorf("Expected one init at %d, got %v", audiotest.SampleRate, out.inits)
	}
	if p.Duration() != audiotest.SampleRate.D(audiotest.SampleRate.N(200*time.Millisecond)) {
		t.Errorf("Unexpected duration %v", p.Duration())
	}

	// Paused ctrl produces silence and does not advance the tap.
	out.pull(256)
	if got := p.Samples(256); len(got) != 0 {
		t.Errorf("Expected no samples while paused, got %d", len(got))
	}
}

func TestToggle(t *testing.T) {
	out := &fakeOutput{}
	p := NewWithOutput(out, 1024)

	if err := p.Toggle(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Expected ErrNotLoaded, got %v", err)
	}

	if err := p.Load(audiotest.WriteSineWAV(t, 110, 100*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if err := p.Toggle(); err != nil {
		t.Fatal(err)
	}
	if !p.Playing() {
		t.Fatal("Expected playing after toggle")
	}

	out.pull(512)
	if got := p.Samples(512); len(got) != 512 {
		t.Errorf("Expected 512 tapped samples, got %d", len(got))
	}
	if p.Position() == 0 {
		t.Error("Expected position to advance")
	}

	if err := p.Toggle(); err != nil {
		t.Fatal(err)
	}
	if p.Playing() {
		t.Error("Expected paused after second toggle")
	}
}

func TestLoopsPastEnd(t *testing.T) {
	out := &fakeOutput{}
	p := NewWithOutput(out, 8192)
	if err := p.Load(audiotest.WriteSineWAV(t, 110, 10*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	_ = p.Toggle()

	// 10ms is 441 samples; pulling more must keep the stream going.
	out.pull(2000)
	if got := p.Samples(2000); len(got) != 2000 {
		t.Errorf("Expected looping stream to fill 2000 samples, got %d", len(got))
	}
}

func TestReloadSameRateDoesNotReinit(t *testing.T) {
	out := &fakeOutput{}
	p := NewWithOutput(out, 1024)
	for i := 0; i < 2; i++ {
		if err := p.Load(audiotest.WriteSineWAV(t, 220, 50*time.Millisecond)); err != nil {
			t.Fatal(err)
		}
	}
	defer p.Close()

	if len(out.inits) != 1 {
		t.Errorf("Expected a single output init, got %d", len(out.inits))
	}
	if len(out.playing) != 1 {
		t.Errorf("Expected only the latest file playing, got %d streamers", len(out.playing))
	}
}

func TestLoadInitError(t *testing.T) {
	boom := errors.New("no device")
	p := NewWithOutput(&fakeOutput{initErr: boom}, 1024)
	if err := p.Load(audiotest.WriteSineWAV(t, 220, 50*time.Millisecond)); !errors.Is(err, boom) {
		t.Errorf("Expected init error, got %v", err)
	}
	if p.Loaded() {
		t.Error("Expected nothing loaded after failed init")
	}
}

func TestFailedReinitDropsPreviousFile(t *testing.T) {
	out := &fakeOutput{}
	p := NewWithOutput(out, 1024)
	if err := p.Load(audiotest.WriteSineWAV(t, 60, 100*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if err := p.Toggle(); err != nil {
		t.Fatal(err)
	}
	out.pull(256)

	boom := errors.New("device gone")
	out.initErr = boom
	err := p.Load(audiotest.WriteSineWAVAt(t, 22050, 60, 100*time.Millisecond))
	if !errors.Is(err, boom) {
		t.Fatalf("Expected init error, got %v", err)
	}

	if p.Playing() || p.Loaded() {
		t.Errorf("Expected nothing playing after failed re-init, got loaded=%v playing=%v", p.Loaded(), p.Playing())
	}
	if got := p.Samples(128); len(got) != 0 {
		t.Errorf("Expected no stale samples, got %d", len(got))
	}
	if p.Position() != 0 || p.Duration() != 0 {
		t.Errorf("Expected zero position and duration, got %v / %v", p.Position(), p.Duration())
	}

	// a working output can be used again
	out.initErr = nil
	if err := p.Load(audiotest.WriteSineWAVAt(t, 22050, 60, 100*time.Millisecond)); err != nil {
		t.Fatalf("Expected reload to succeed, got %v", err)
	}
	if len(out.inits) != 2 || out.inits[1] != 22050 {
		t.Errorf("Expected a second init at 22050, got %v", out.inits)
	}
	p.Close()
}
