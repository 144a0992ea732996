// Package export renders the sketch for an audio file to a numbered PNG sequence.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/iburimskiy/audio-wheels/internal/analysis"
	"github.com/iburimskiy/audio-wheels/internal/audio"
	"github.com/iburimskiy/audio-wheels/internal/config"
	"github.com/iburimskiy/audio-wheels/internal/wheel"
)

type Renderer struct {
	cfg   config.Config
	scene *wheel.Scene
}

func New(cfg config.Config, seed int64) (*Renderer, error) {
	scene, err := wheel.NewScene(cfg, seed)
	if err != nil {
		return nil, err
	}
	scene.Layout(cfg.Width, cfg.Height)
	return &Renderer{cfg: cfg, scene: scene}, nil
}

// FrameName is the file name of frame i inside the output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i)
}

// Run decodes audioPath and writes one frame per 1/fps seconds of audio into
// outDir. It stops at the end of the audio, after cfg.ExportFrames frames when
// that is set, or when ctx is done. It returns the number of frames written.
func (r *Renderer) Run(ctx context.Context, audioPath, outDir string) (int, error) {
	streamer, format, err := audio.Decode(audioPath)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	analyzer := analysis.New(r.cfg.Bins, r.cfg.Smoothing, float64(format.SampleRate))
	tap := audio.NewTap(streamer, config.VisualRingSize)
	surf := newSurface(r.cfg.Width, r.cfg.Height)

	perFrame := int(format.SampleRate) / r.cfg.ExportFPS
	if perFrame < 1 {
		perFrame = 1
	}
	buf := make([][2]float64, perFrame)

	frames := 0
	for r.cfg.ExportFrames == 0 || frames < r.cfg.ExportFrames {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		n, more := fill(tap, buf)
		if n == 0 {
			break
		}

		analyzer.Analyze(audio.Mono(tap.Snapshot(analyzer.FFTSize())))
		r.scene.Render(surf, wheel.Frame{
			Playing:  true,
			Bass:     analyzer.BandEnergy(analysis.Bass),
			Waveform: analyzer.Waveform(),
		})

		if err := safeWrite(surf.dc, filepath.Join(outDir, FrameName(frames))); err != nil {
			return frames, err
		}
		frames++
		if frames%r.cfg.ExportFPS == 0 {
			log.Printf("rendered %d frames (%d particles)", frames, r.scene.Particles.Len())
		}
		if !more {
			break
		}
	}
	if err := tap.Err(); err != nil {
		return frames, err
	}
	return frames, nil
}

// fill streams until buf is full or the source is drained.
func fill(s *audio.Tap, buf [][2]float64) (int, bool) {
	filled := 0
	for filled < len(buf) {
		n, ok := s.Stream(buf[filled:])
		filled += n
		if !ok {
			return filled, false
		}
	}
	return filled, true
}

// safeWrite writes to a temp file then renames atomically
func safeWrite(dc *gg.Context, fname string) error {
	tmp, err := os.CreateTemp(filepath.Dir(fname), "frame.*.png")
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), fname); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Chmod(fname, 0o644)
}
