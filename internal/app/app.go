// Package app wires configuration, the audio backend, the timer and the
// player into the terminal UI.
package app

import (
	"fmt"
	"os"
	"strings"

	"focusflow/internal/audio"
	"focusflow/internal/config"
	"focusflow/internal/interval"
	"focusflow/internal/logging"
	"focusflow/internal/player"
	"focusflow/internal/ui"
)

type App struct {
	settings config.Settings
	media    *audio.Player
	ui       *ui.TUI
}

// New loads settings and builds the components. Config problems are logged
// and the defaults used instead.
func New() (*App, error) {
	configureLogging()

	settings := config.Default()
	if path, err := config.Path(); err != nil {
		logging.Error("config path", err)
	} else if loaded, err := config.Load(path); err != nil {
		logging.Error("config", err)
	} else {
		settings = loaded
	}
	if settings.LogDir != "" {
		logging.SetDir(settings.LogDir)
	}
	return build(settings, audio.NewPlayer())
}

func build(settings config.Settings, media *audio.Player) (*App, error) {
	results := make(chan player.Result, 8)
	tp, err := player.New(media, toTracks(settings.Tracks),
		player.WithVolume(settings.Volume),
		player.WithResultHandler(func(res player.Result) {
			go func() { results <- res }()
		}),
	)
	if err != nil {
		media.Close()
		return nil, fmt.Errorf("create player: %w", err)
	}

	model := ui.NewModel(ui.Options{
		Timer:   interval.NewTimer(settings.WorkMinutes, settings.RestMinutes),
		Player:  tp,
		Events:  media.Events(),
		Results: results,
		Theme:   settings.Theme,
	})

	logging.Debugf("starting with %d track(s), %d/%d minutes",
		len(settings.Tracks), settings.WorkMinutes, settings.RestMinutes)

	return &App{
		settings: settings,
		media:    media,
		ui:       ui.New(model),
	}, nil
}

// Run blocks until the UI exits, then releases the audio device.
func (a *App) Run() error {
	defer logging.Close()
	defer a.media.Close()
	return a.ui.Start()
}

func toTracks(in []config.Track) []player.Track {
	out := make([]player.Track, len(in))
	for i, t := range in {
		out[i] = player.Track{Name: t.Name, Artist: t.Artist, Source: t.Source, Icon: t.Icon}
	}
	return out
}

// configureLogging honours FOCUSFLOW_LOG: "stderr" or a directory.
func configureLogging() {
	switch v := strings.TrimSpace(os.Getenv(config.LogEnvVar)); v {
	case "":
	case "stderr":
		logging.SetOutput(os.Stderr)
	default:
		logging.SetDir(v)
	}
}
