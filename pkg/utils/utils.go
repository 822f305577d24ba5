package utils

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MusicExtensions lists the extensions accepted as track sources.
var MusicExtensions = map[string]bool{
	".mp3": true,
}

// MagicNumbers holds the leading bytes of decodable audio files.
var MagicNumbers = map[string][]byte{
	"id3":  {0x49, 0x44, 0x33}, // ID3 tag
	"mpeg": {0xFF, 0xFB},       // MPEG-1 Layer III frame sync
	"mpg2": {0xFF, 0xF3},       // MPEG-2 Layer III frame sync
	"mpgA": {0xFF, 0xF2},
}

// IsRemoteSource reports whether source is an http(s) URL.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// IsMusicSource reports whether source looks playable: an http(s) URL whose
// path has a known extension, or an existing local file with a known
// extension and a recognised header.
func IsMusicSource(source string) bool {
	source = strings.TrimSpace(source)
	if source == "" {
		return false
	}
	if IsRemoteSource(source) {
		u, err := url.Parse(source)
		if err != nil {
			return false
		}
		return MusicExtensions[strings.ToLower(filepath.Ext(u.Path))]
	}
	return IsMusicFile(ExpandHome(source))
}

// IsMusicFile checks the extension, then the first bytes of the file.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !MusicExtensions[ext] {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 8)
	n, err := file.Read(header)
	if err != nil || n < 4 {
		return false
	}
	header = header[:n]

	if strings.HasPrefix(http.DetectContentType(header), "audio/") {
		return true
	}

	for _, magic := range MagicNumbers {
		if len(magic) <= len(header) && string(header[:len(magic)]) == string(magic) {
			return true
		}
	}
	return false
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
