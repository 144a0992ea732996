package game

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/audio-wheels/internal/analysis"
	"github.com/iburimskiy/audio-wheels/internal/audio"
	"github.com/iburimskiy/audio-wheels/internal/config"
	"github.com/iburimskiy/audio-wheels/internal/player"
	"github.com/iburimskiy/audio-wheels/internal/wheel"
)

type Game struct {
	cfg      config.Config
	player   *player.Player
	analyzer *analysis.Analyzer
	scene    *wheel.Scene
	surface  screenSurface
	frame    wheel.Frame

	playButton button
	openButton button

	colorPhase float64
	lastErr    error
}

func New(cfg config.Config, p *player.Player, seed int64) (*Game, error) {
	scene, err := wheel.NewScene(cfg, seed)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:      cfg,
		player:   p,
		analyzer: analysis.New(cfg.Bins, cfg.Smoothing, 44100),
		scene:    scene,
		playButton: button{
			label: "Play / Pause",
			w:     config.ButtonWidth,
			h:     config.ButtonHeight,
		},
		openButton: button{
			label: "Open File",
			x:     config.ButtonX,
			y:     config.ButtonY,
			w:     config.ButtonWidth,
			h:     config.ButtonHeight,
		},
	}, nil
}

// Open loads path into the player and restarts the analysis. Playback stays
// paused until toggled.
func (g *Game) Open(path string) error {
	if err := g.player.Load(path); err != nil {
		return err
	}
	g.analyzer.SetSampleRate(float64(g.player.SampleRate()))
	g.analyzer.Reset()
	g.lastErr = nil
	return nil
}

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.playButton.update(mouseX, mouseY, pressed, released) {
		g.toggleAudio()
	}
	if g.openButton.update(mouseX, mouseY, pressed, released) || inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openFileDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleAudio()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.colorPhase += 0.2
	g.analyze()
	return nil
}

// analyze runs the FFT over what the speaker played most recently. A paused
// or empty player reads as silence so the spectrum decays.
func (g *Game) analyze() {
	playing := g.player.Playing()
	var mono []float64
	if playing {
		mono = audio.Mono(g.player.Samples(g.analyzer.FFTSize()))
	}
	g.analyzer.Analyze(mono)
	g.frame = wheel.Frame{
		Playing:  playing,
		Bass:     g.analyzer.BandEnergy(analysis.Bass),
		Waveform: g.analyzer.Waveform(),
	}
}

func (g *Game) toggleAudio() {
	if !g.player.Loaded() {
		if err := g.openFileDialog(); err != nil {
			g.lastErr = err
			return
		}
		if !g.player.Loaded() {
			return
		}
	}
	if err := g.player.Toggle(); err != nil {
		g.lastErr = err
	}
}

func (g *Game) openFileDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.Open(filename)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.scene.Render(&g.surface, g.frame)

	g.playButton.draw(screen)
	g.openButton.draw(screen)
	g.drawProgressBar(screen)

	var status string
	switch {
	case !g.player.Loaded():
		status = "Open an audio file to start"
	case g.frame.Playing:
		status = "Playing - Space to pause, O to open another"
	default:
		status = "Paused - Space to play, O to open another"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	duration := g.player.Duration()
	if duration == 0 {
		return
	}
	position := g.player.Position()

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	barX := 20
	barWidth := w - 40
	barHeight := 6
	barY := h - config.ButtonHeight - config.ButtonMargin - 20

	progress := float64(position) / float64(duration)

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	if progress > 0 {
		fill := hueColor(g.colorPhase+progress*180, 0.8, 0.9, 180)
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress*float64(barWidth)), float32(barHeight), fill, false)
	}

	label := formatDuration(position) + " / " + formatDuration(duration)
	ebitenutil.DebugPrintAt(screen, label, barX, barY-18)
}

// Layout follows the window size. A new size re-lays out the wheels and
// re-centres the Play / Pause button at the bottom.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.scene.Layout(outsideWidth, outsideHeight) {
		g.playButton.x = (outsideWidth - g.playButton.w) / 2
		g.playButton.y = outsideHeight - g.playButton.h - config.ButtonMargin
		log.Printf("layout %dx%d: %d wheels", outsideWidth, outsideHeight, len(g.scene.Circles))
	}
	return outsideWidth, outsideHeight
}
