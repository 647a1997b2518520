package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/ncruces/zenity"
	"github.com/spf13/pflag"
)

func main() {
	cfg := config.NewFieldConfig()
	cfg.AddFlags(pflag.CommandLine)
	pflag.Parse()

	if err := cfg.LoadConfig(pflag.CommandLine); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	animator, err := field.New(opts)
	if err != nil {
		log.Fatalf("failed to create animator: %v", err)
	}

	g, err := game.NewGame(cfg, animator)
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		if errors.Is(err, field.ErrNoContext) {
			showFatal(cfg.Title, err)
		}
		log.Fatalf("particle field stopped: %v", err)
	}
}

// showFatal reports an unrecoverable startup error in a native dialog so it is
// seen even when the program was not started from a terminal.
func showFatal(title string, err error) {
	if derr := zenity.Error(err.Error(), zenity.Title(title), zenity.ErrorIcon); derr != nil {
		log.Printf("failed to show error dialog: %v", derr)
	}
}
