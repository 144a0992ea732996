package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/audio-wheels/internal/config"
	"github.com/iburimskiy/audio-wheels/internal/export"
	"github.com/iburimskiy/audio-wheels/internal/game"
	"github.com/iburimskiy/audio-wheels/internal/player"
)

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)

	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [audio file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("seed %x", seed)

	path := flag.Arg(0)
	if cfg.Export {
		if path == "" {
			log.Fatal("-export needs an audio file")
		}
		if err := runExport(cfg, seed, path); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runWindow(cfg, seed, path); err != nil {
		log.Fatal(err)
	}
}

func runExport(cfg config.Config, seed int64, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := export.New(cfg, seed)
	if err != nil {
		return err
	}
	n, err := r.Run(ctx, path, cfg.ExportDir)
	log.Printf("wrote %d frames to %s", n, cfg.ExportDir)
	return err
}

func runWindow(cfg config.Config, seed int64, path string) error {
	p := player.New(config.VisualRingSize)
	defer p.Close()

	g, err := game.New(cfg, p, seed)
	if err != nil {
		return err
	}
	if path != "" {
		if err := g.Open(path); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Audio Wheels - Play / Pause or Space, O: open file, Esc/Q: quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
