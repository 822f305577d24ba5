package app

import (
	"errors"
	"io"
	"testing"

	"focusflow/internal/audio"
	"focusflow/internal/config"
	"focusflow/internal/logging"
)

func offlineMedia() *audio.Player {
	return audio.NewPlayer(audio.WithFetcher(func(string, <-chan struct{}) ([]byte, error) {
		return nil, errors.New("offline")
	}))
}

func TestToTracksCopiesFields(t *testing.T) {
	in := []config.Track{{Name: "rain", Artist: "nobody", Source: "rain.mp3", Icon: "🌧️"}}
	out := toTracks(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 track, got %d", len(out))
	}
	got := out[0]
	if got.Name != "rain" || got.Artist != "nobody" || got.Source != "rain.mp3" || got.Icon != "🌧️" {
		t.Fatalf("unexpected track %+v", got)
	}
}

func TestBuildUsesSettings(t *testing.T) {
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })

	settings := config.Default()
	settings.WorkMinutes = 50
	a, err := build(settings, offlineMedia())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { a.media.Close() })
	if a.ui == nil {
		t.Fatalf("expected a UI")
	}
	if a.settings.WorkMinutes != 50 {
		t.Fatalf("expected settings to be kept, got %d", a.settings.WorkMinutes)
	}
}

func TestBuildWithoutTracksFails(t *testing.T) {
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })

	settings := config.Default()
	settings.Tracks = nil
	if _, err := build(settings, offlineMedia()); err == nil {
		t.Fatalf("expected an error without tracks")
	}
}
