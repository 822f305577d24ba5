package audio

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dhowden/tag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Metadata is what the tags of a track say about it.
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Year     int
	Format   string
	FileSize int64
	Duration time.Duration
}

// ExtractMetadata reads ID3/MP4/FLAC tags from data. Text fields are
// decoded with a best-effort charset guess.
func ExtractMetadata(data []byte) (*Metadata, error) {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	return &Metadata{
		Title:    tryDecode(m.Title()),
		Artist:   tryDecode(m.Artist()),
		Album:    tryDecode(m.Album()),
		Genre:    tryDecode(m.Genre()),
		Year:     m.Year(),
		Format:   fmt.Sprintf("%s/%s", m.FileType(), m.Format()),
		FileSize: int64(len(data)),
	}, nil
}

var textEncodings = []encoding.Encoding{
	charmap.Windows1251,
	charmap.KOI8R,
	charmap.ISO8859_5,
	charmap.CodePage866,
	simplifiedchinese.GB18030,
	traditionalchinese.Big5,
	japanese.EUCJP,
	korean.EUCKR,
	unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
}

func tryDecode(text string) string {
	text = strings.TrimSpace(strings.TrimRight(text, "\x00"))
	if text == "" {
		return ""
	}

	if utf8.ValidString(text) && isReadable(text) {
		return text
	}
	for _, enc := range textEncodings {
		decoded, err := enc.NewDecoder().String(text)
		if err == nil && isReadable(decoded) {
			return decoded
		}
	}

	return cleanString(text)
}

func readableRune(r rune) bool {
	return r >= 32 && r < 127 ||
		r >= 0x400 && r <= 0x4FF ||
		r >= 0x3040 && r <= 0x30FF ||
		r >= 0x4E00 && r <= 0x9FFF
}

// isReadable reports whether more than half the runes are printable in the
// scripts tags commonly use.
func isReadable(s string) bool {
	if s == "" {
		return false
	}
	readable, total := 0, 0
	for _, r := range s {
		total++
		if readableRune(r) {
			readable++
		}
	}
	return float64(readable)/float64(total) > 0.5
}

func cleanString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if readableRune(r) {
			result.WriteRune(r)
		} else {
			result.WriteRune('?')
		}
	}
	return result.String()
}

func (m *Metadata) String() string {
	var b strings.Builder

	b.WriteString("┌─── Track Information ─────────────────\n")
	fmt.Fprintf(&b, "│ %-10s: %s\n", "Title", orUnknown(m.Title))
	fmt.Fprintf(&b, "│ %-10s: %s\n", "Artist", orUnknown(m.Artist))
	fmt.Fprintf(&b, "│ %-10s: %s\n", "Album", orUnknown(m.Album))
	if m.Genre != "" {
		fmt.Fprintf(&b, "│ %-10s: %s\n", "Genre", m.Genre)
	}
	if m.Year != 0 {
		fmt.Fprintf(&b, "│ %-10s: %d\n", "Year", m.Year)
	}
	fmt.Fprintf(&b, "│ %-10s: %s\n", "Format", m.Format)
	fmt.Fprintf(&b, "│ %-10s: %d bytes\n", "Size", m.FileSize)
	if m.Duration > 0 {
		fmt.Fprintf(&b, "│ %-10s: %s\n", "Duration", m.Duration.Round(time.Second))
	}
	b.WriteString("└───────────────────────────────────────")

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
