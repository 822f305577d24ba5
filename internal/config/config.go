// Package config holds the compiled-in defaults and reads the optional
// read-only YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focusflow/internal/interval"
	"focusflow/internal/logging"
	"focusflow/pkg/utils"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTrack marks a configured track that cannot be played.
var ErrInvalidTrack = errors.New("invalid track")

// Settings are the values the app starts with.
type Settings struct {
	WorkMinutes int
	RestMinutes int
	Volume      float64
	Theme       string
	LogDir      string
	Tracks      []Track
}

type yamlSettings struct {
	WorkMinutes int      `yaml:"work_minutes"`
	RestMinutes int      `yaml:"rest_minutes"`
	Volume      *float64 `yaml:"volume"`
	Theme       string   `yaml:"theme"`
	LogDir      string   `yaml:"log_dir"`
	Tracks      []Track  `yaml:"tracks"`
}

// Default returns the compiled-in settings.
func Default() Settings {
	return Settings{
		WorkMinutes: DefaultWorkMinutes,
		RestMinutes: DefaultRestMinutes,
		Volume:      DefaultVolume,
		Theme:       ThemeDark,
		Tracks:      append([]Track(nil), DefaultTracks...),
	}
}

// Path resolves the settings file: $FOCUSFLOW_CONFIG, else
// <user config dir>/focusflow/config.yaml.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(ConfigEnvVar)); p != "" {
		return utils.ExpandHome(p), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName, ConfigFileName), nil
}

// Load reads settings from path. A missing file yields the defaults.
// Invalid fields are skipped individually and logged. Relative local track
// sources, the default track included, are resolved against the directory
// holding path.
func Load(path string) (Settings, error) {
	dir := filepath.Dir(path)
	settings := Default()
	for i := range settings.Tracks {
		settings.Tracks[i].Source = ResolveSource(dir, settings.Tracks[i].Source)
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData, dir)
	return settings, nil
}

// ResolveSource expands ~ and joins relative local paths onto dir. URLs and
// absolute paths are returned unchanged.
func ResolveSource(dir, source string) string {
	source = strings.TrimSpace(source)
	if source == "" || utils.IsRemoteSource(source) {
		return source
	}
	source = utils.ExpandHome(source)
	if filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(dir, source)
}

func applyYamlSettings(settings *Settings, fileData yamlSettings, dir string) {
	if interval.ValidMinutes(fileData.WorkMinutes) {
		settings.WorkMinutes = fileData.WorkMinutes
	} else if fileData.WorkMinutes != 0 {
		logging.Debugf("config: work_minutes %d out of range, using %d", fileData.WorkMinutes, settings.WorkMinutes)
	}
	if interval.ValidMinutes(fileData.RestMinutes) {
		settings.RestMinutes = fileData.RestMinutes
	} else if fileData.RestMinutes != 0 {
		logging.Debugf("config: rest_minutes %d out of range, using %d", fileData.RestMinutes, settings.RestMinutes)
	}

	if fileData.Volume != nil {
		if v := *fileData.Volume; v >= 0 && v <= 1 {
			settings.Volume = v
		} else {
			logging.Debugf("config: volume %v out of range", v)
		}
	}

	switch strings.ToLower(fileData.Theme) {
	case ThemeDark, ThemeLight:
		settings.Theme = strings.ToLower(fileData.Theme)
	case "":
	default:
		logging.Debugf("config: unknown theme %q", fileData.Theme)
	}

	if fileData.LogDir != "" {
		settings.LogDir = utils.ExpandHome(fileData.LogDir)
	}

	var tracks []Track
	for i, tr := range fileData.Tracks {
		tr.Source = ResolveSource(dir, tr.Source)
		if err := ValidateTrack(tr); err != nil {
			logging.Debugf("config: track %d: %v", i, err)
			continue
		}
		tracks = append(tracks, tr)
	}
	if len(tracks) > 0 {
		settings.Tracks = tracks
	}
}

// ValidateTrack checks that a track has a playable source.
func ValidateTrack(tr Track) error {
	if strings.TrimSpace(tr.Source) == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidTrack)
	}
	if !utils.IsMusicSource(tr.Source) {
		return fmt.Errorf("%w: %s is not a playable mp3 source", ErrInvalidTrack, tr.Source)
	}
	return nil
}
