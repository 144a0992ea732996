package player

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/audio-wheels/internal/audio"
)

var ErrNotLoaded = errors.New("no audio loaded")

// Output is where the player sends audio. The default is the beep speaker.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerOutput) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (speakerOutput) Clear()                                        { speaker.Clear() }
func (speakerOutput) Lock()                                         { speaker.Lock() }
func (speakerOutput) Unlock()                                       { speaker.Unlock() }

// Player loops one audio file and keeps the most recently played samples
// available for analysis.
type Player struct {
	out      Output
	ringSize int

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *audio.Tap
	initDone bool
}

// New returns a player on the system speaker.
func New(ringSize int) *Player {
	return NewWithOutput(speakerOutput{}, ringSize)
}

func NewWithOutput(out Output, ringSize int) *Player {
	return &Player{out: out, ringSize: ringSize}
}

// Load replaces the current file with path. Playback starts paused.
func (p *Player) Load(path string) error {
	streamer, format, err := audio.Decode(path)
	if err != nil {
		return err
	}

	// Prepare audio chain: loop -> tap -> ctrl
	loop := beep.Loop(-1, streamer)
	tap := audio.NewTap(loop, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: true}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		// Re-init when sample rate changes
		p.out.Lock()
		p.out.Clear()
		p.out.Unlock()
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			// the previous file is no longer on the output either
			_ = p.release()
			p.initDone = false
			return err
		}
	default:
		p.out.Lock()
		p.out.Clear()
		p.out.Unlock()
	}

	if p.streamer != nil {
		_ = p.streamer.Close()
	}
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap

	p.out.Play(ctrl)
	log.Printf("loaded %s (%s, %d Hz)", path, format.SampleRate.D(streamer.Len()).Round(time.Second), format.SampleRate)
	return nil
}

// Toggle pauses playback if it is running and resumes looping otherwise.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return ErrNotLoaded
	}
	p.out.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	p.out.Unlock()
	return nil
}

func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return false
	}
	p.out.Lock()
	defer p.out.Unlock()
	return !p.ctrl.Paused
}

// Samples returns up to the last n played stereo samples.
func (p *Player) Samples(n int) [][2]float64 {
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap == nil {
		return nil
	}
	return tap.Snapshot(n)
}

func (p *Player) SampleRate() beep.SampleRate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format.SampleRate
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	defer p.out.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Close stops playback and releases the current file.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	p.out.Lock()
	p.out.Clear()
	p.out.Unlock()
	return p.release()
}

// release closes the current file and forgets it. Callers hold p.mu.
func (p *Player) release() error {
	var err error
	if p.streamer != nil {
		err = p.streamer.Close()
	}
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	p.format = beep.Format{}
	return err
}
