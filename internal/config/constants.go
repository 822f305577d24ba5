package config

import (
	"time"

	"focusflow/internal/interval"
	"focusflow/internal/player"
)

// Application identity.
const (
	AppName        = "focusflow"
	ConfigFileName = "config.yaml"
	ConfigEnvVar   = "FOCUSFLOW_CONFIG"
	LogEnvVar      = "FOCUSFLOW_LOG"
)

// Timer defaults, in minutes. The accepted range is interval.ValidMinutes.
const (
	DefaultWorkMinutes = interval.DefaultWorkMinutes
	DefaultRestMinutes = interval.DefaultRestMinutes
)

// Player defaults. VolumeStep and SeekStep drive the volume and seek keys.
const (
	DefaultVolume = player.DefaultVolume
	VolumeStep    = 0.05
	SeekStep      = 5 * time.Second
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Track is a configured track entry.
type Track struct {
	Name   string `yaml:"name"`
	Artist string `yaml:"artist"`
	Source string `yaml:"source"`
	Icon   string `yaml:"icon"`
}

// DefaultTracks is the compiled-in track list. Its source is relative, so
// Load resolves it against the config directory: the file is expected at
// <user config dir>/focusflow/shared/playlist1.mp3.
var DefaultTracks = []Track{
	{
		Name:   "acoustic breeze",
		Artist: "Unknown",
		Source: "shared/playlist1.mp3",
		Icon:   "🌧️",
	},
}
