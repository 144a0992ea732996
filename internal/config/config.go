package config

import (
	"errors"
	"flag"
	"fmt"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	VisualRingSize = 8192

	// FFT
	FFTBins      = 64
	FFTSmoothing = 0.8

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50
	ButtonMargin = 20

	// Wheel parameters
	Layers          = 5
	DotBase         = 36
	DotStep         = 6
	DotFactor       = 0.05
	RingStroke      = 2
	CenterFactor    = 0.5
	CenterStroke    = 0.05
	OuterLayers     = 2
	RippleAmount    = 0.15
	BassThreshold   = 200
	SpawnChance     = 0.02
	FadeStep        = 4
	MaxParticles    = 1500
	ScaleMin        = 0.9
	ScaleMax        = 1.0
	CircleCount     = 12
	CircleMinRadius = 0.06
	CircleMaxRadius = 0.16

	ExportFPS = 60
)

// Config holds every tunable of the sketch. Zero values are not meaningful, start from Default.
type Config struct {
	Width  int
	Height int

	Bins      int
	Smoothing float64

	ScaleMin float64
	ScaleMax float64

	Layers       int
	DotBase      int
	DotStep      int
	DotFactor    float64
	RingStroke   float64
	CenterFactor float64
	CenterStroke float64
	OuterLayers  int
	RippleAmount float64

	BassThreshold float64
	SpawnChance   float64
	SpeedMin      float64
	SpeedMax      float64
	SizeMin       float64
	SizeMax       float64
	HueJitter     float64
	FadeStep      float64
	MaxParticles  int

	CircleCount     int
	CircleMinRadius float64 // fraction of the shorter canvas side
	CircleMaxRadius float64
	Background      string // hex, e.g. "#101418"

	Seed int64

	Export       bool
	ExportDir    string
	ExportFPS    int
	ExportFrames int // 0 renders the whole file
}

// Default returns the stock sketch settings.
func Default() Config {
	return Config{
		Width:           WindowWidth,
		Height:          WindowHeight,
		Bins:            FFTBins,
		Smoothing:       FFTSmoothing,
		ScaleMin:        ScaleMin,
		ScaleMax:        ScaleMax,
		Layers:          Layers,
		DotBase:         DotBase,
		DotStep:         DotStep,
		DotFactor:       DotFactor,
		RingStroke:      RingStroke,
		CenterFactor:    CenterFactor,
		CenterStroke:    CenterStroke,
		OuterLayers:     OuterLayers,
		RippleAmount:    RippleAmount,
		BassThreshold:   BassThreshold,
		SpawnChance:     SpawnChance,
		SpeedMin:        0.5,
		SpeedMax:        2,
		SizeMin:         2,
		SizeMax:         5,
		HueJitter:       20,
		FadeStep:        FadeStep,
		MaxParticles:    MaxParticles,
		CircleCount:     CircleCount,
		CircleMinRadius: CircleMinRadius,
		CircleMaxRadius: CircleMaxRadius,
		Background:      "#101418",
		ExportDir:       "frames",
		ExportFPS:       ExportFPS,
	}
}

// RegisterFlags binds the user-facing subset of c to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "canvas width")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height")
	fs.IntVar(&c.Bins, "bins", c.Bins, "number of FFT frequency bins (power of two)")
	fs.Float64Var(&c.Smoothing, "smoothing", c.Smoothing, "FFT smoothing between frames, 0..1")
	fs.IntVar(&c.CircleCount, "circles", c.CircleCount, "number of wheels to lay out")
	fs.IntVar(&c.Layers, "layers", c.Layers, "rings per wheel")
	fs.Float64Var(&c.BassThreshold, "threshold", c.BassThreshold, "bass energy (0..255) above which particles spawn")
	fs.Float64Var(&c.SpawnChance, "spawn", c.SpawnChance, "per-dot spawn probability while above threshold")
	fs.IntVar(&c.MaxParticles, "max-particles", c.MaxParticles, "particle cap")
	fs.StringVar(&c.Background, "bg", c.Background, "background colour as hex")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "layout seed, 0 picks one from the clock")
	fs.BoolVar(&c.Export, "export", c.Export, "render frames to PNG instead of opening a window")
	fs.StringVar(&c.ExportDir, "out", c.ExportDir, "export output directory")
	fs.IntVar(&c.ExportFPS, "fps", c.ExportFPS, "export frame rate")
	fs.IntVar(&c.ExportFrames, "frames", c.ExportFrames, "export frame limit, 0 for the whole file")
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Bins < 16 || c.Bins&(c.Bins-1) != 0 {
		errs = append(errs, fmt.Errorf("bins %d must be a power of two >= 16", c.Bins))
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		errs = append(errs, fmt.Errorf("smoothing %v must be in [0, 1)", c.Smoothing))
	}
	if c.ScaleMin > c.ScaleMax {
		errs = append(errs, fmt.Errorf("scale range %v..%v is reversed", c.ScaleMin, c.ScaleMax))
	}
	if c.Layers <= 0 {
		errs = append(errs, fmt.Errorf("layers %d must be positive", c.Layers))
	}
	if c.OuterLayers < 0 || c.OuterLayers > c.Layers {
		errs = append(errs, fmt.Errorf("outer layers %d must be within 0..%d", c.OuterLayers, c.Layers))
	}
	if c.BassThreshold < 0 || c.BassThreshold > 255 {
		errs = append(errs, fmt.Errorf("threshold %v must be within 0..255", c.BassThreshold))
	}
	if c.SpawnChance < 0 || c.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("spawn chance %v must be within 0..1", c.SpawnChance))
	}
	if c.FadeStep <= 0 {
		errs = append(errs, errors.New("fade step must be positive"))
	}
	if c.MaxParticles < 0 {
		errs = append(errs, fmt.Errorf("max particles %d must not be negative", c.MaxParticles))
	}
	if c.CircleCount < 0 {
		errs = append(errs, fmt.Errorf("circle count %d must not be negative", c.CircleCount))
	}
	if c.CircleMinRadius <= 0 || c.CircleMinRadius > c.CircleMaxRadius {
		errs = append(errs, fmt.Errorf("circle radius range %v..%v is invalid", c.CircleMinRadius, c.CircleMaxRadius))
	}
	if c.Export && c.ExportFPS <= 0 {
		errs = append(errs, fmt.Errorf("export fps %d must be positive", c.ExportFPS))
	}
	return errors.Join(errs...)
}
