// Package player holds the playback state of a fixed track list and turns
// user gestures into requests on a Media backend.
package player

import (
	"fmt"
	"math"

	"focusflow/internal/logging"
)

// DefaultVolume is the starting output gain.
const DefaultVolume = 0.3

// Track is a playable item with display metadata.
type Track struct {
	Name   string
	Artist string
	Source string
	Icon   string
}

// State is a read-only snapshot for renderers.
type State struct {
	Track        Track
	Index        int
	Playing      bool
	Position     float64
	Duration     float64
	Volume       float64
	PanelVisible bool
}

// Option configures a TrackPlayer.
type Option func(*TrackPlayer)

// WithVolume sets the initial volume, clamped to [0,1].
func WithVolume(v float64) Option {
	return func(p *TrackPlayer) {
		if !math.IsNaN(v) {
			p.volume = clamp(v, 0, 1)
		}
	}
}

// WithResultHandler registers the completion handler for play requests. It
// may be called from a media goroutine and must not touch the player.
func WithResultHandler(fn func(Result)) Option {
	return func(p *TrackPlayer) {
		p.onResult = fn
	}
}

// TrackPlayer is not safe for concurrent use. Media notifications must be
// funnelled to the goroutine that owns it.
type TrackPlayer struct {
	media        Media
	tracks       []Track
	index        int
	playing      bool
	position     float64
	duration     float64
	volume       float64
	panelVisible bool
	token        uint64
	onResult     func(Result)
}

// New loads the first track into media.
func New(media Media, tracks []Track, opts ...Option) (*TrackPlayer, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	if media == nil {
		return nil, fmt.Errorf("media backend is nil")
	}
	p := &TrackPlayer{
		media:  media,
		tracks: append([]Track(nil), tracks...),
		volume: DefaultVolume,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.media.SetVolume(p.volume)
	p.token = p.media.Load(p.tracks[0].Source)
	return p, nil
}

func (p *TrackPlayer) Tracks() []Track    { return append([]Track(nil), p.tracks...) }
func (p *TrackPlayer) Index() int         { return p.index }
func (p *TrackPlayer) Current() Track     { return p.tracks[p.index] }
func (p *TrackPlayer) Playing() bool      { return p.playing }
func (p *TrackPlayer) Position() float64  { return p.position }
func (p *TrackPlayer) Duration() float64  { return p.duration }
func (p *TrackPlayer) Volume() float64    { return p.volume }
func (p *TrackPlayer) PanelVisible() bool { return p.panelVisible }
func (p *TrackPlayer) Token() uint64      { return p.token }

// Snapshot returns the current state.
func (p *TrackPlayer) Snapshot() State {
	return State{
		Track:        p.tracks[p.index],
		Index:        p.index,
		Playing:      p.playing,
		Position:     p.position,
		Duration:     p.duration,
		Volume:       p.volume,
		PanelVisible: p.panelVisible,
	}
}

// Progress returns position/duration in [0,1], 0 while the duration is
// unknown.
func (p *TrackPlayer) Progress() float64 {
	if p.duration <= 0 {
		return 0
	}
	return clamp(p.position/p.duration, 0, 1)
}

// UpdateTrack replaces the display metadata of track i, keeping its source.
func (p *TrackPlayer) UpdateTrack(i int, name, artist string) {
	if i < 0 || i >= len(p.tracks) {
		return
	}
	if name != "" {
		p.tracks[i].Name = name
	}
	if artist != "" {
		p.tracks[i].Artist = artist
	}
}

// TogglePlay requests pause when playing and play otherwise. The playing
// flag follows the request immediately; a later rejection is reported to the
// result handler and can be undone with Reconcile.
func (p *TrackPlayer) TogglePlay() {
	if p.playing {
		p.media.Pause()
		p.playing = false
		return
	}
	p.playing = true
	p.requestPlay()
}

// Reconcile rolls the playing flag back when res rejected the current load.
// It returns true when the state changed.
func (p *TrackPlayer) Reconcile(res Result) bool {
	if res.OK() || res.Token != p.token || !p.playing {
		return false
	}
	p.playing = false
	return true
}

func (p *TrackPlayer) requestPlay() {
	token := p.token
	handler := p.onResult
	name := p.tracks[p.index].Name
	p.media.Play(func(res Result) {
		if res.Token == 0 {
			res.Token = token
		}
		if !res.OK() {
			logging.Debugf("play %q failed: %v", name, res.Err)
		}
		if handler != nil {
			handler(res)
		}
	})
}

// NextTrack advances with wraparound.
func (p *TrackPlayer) NextTrack() {
	p.jump((p.index + 1) % len(p.tracks))
}

// PreviousTrack steps back with wraparound.
func (p *TrackPlayer) PreviousTrack() {
	p.jump((p.index - 1 + len(p.tracks)) % len(p.tracks))
}

// SelectTrack jumps to index. Out-of-range indexes are rejected.
func (p *TrackPlayer) SelectTrack(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.jump(index)
	return true
}

func (p *TrackPlayer) jump(index int) {
	p.index = index
	p.position = 0
	p.duration = 0
	p.token = p.media.Load(p.tracks[index].Source)
	if p.playing {
		p.requestPlay()
	}
}

// Seek moves to fraction of the duration. It is a no-op while the duration
// is unknown.
func (p *TrackPlayer) Seek(fraction float64) bool {
	if p.duration <= 0 || math.IsNaN(p.duration) || math.IsNaN(fraction) {
		return false
	}
	fraction = clamp(fraction, 0, 1)
	t := clamp(fraction*p.duration, 0, p.duration)
	p.media.Seek(t)
	p.position = t
	return true
}

// SeekBy moves relative to the current position, in seconds.
func (p *TrackPlayer) SeekBy(seconds float64) bool {
	if p.duration <= 0 {
		return false
	}
	return p.Seek((p.position + seconds) / p.duration)
}

// SetVolume clamps v to [0,1] and applies it to the media.
func (p *TrackPlayer) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.volume = clamp(v, 0, 1)
	p.media.SetVolume(p.volume)
}

// TogglePanel shows or hides the player panel.
func (p *TrackPlayer) TogglePanel() {
	p.panelVisible = !p.panelVisible
}

// OnPositionUpdate records a progress notification.
func (p *TrackPlayer) OnPositionUpdate(token uint64, t float64) {
	if token != p.token || math.IsNaN(t) {
		return
	}
	if t < 0 {
		t = 0
	}
	if p.duration > 0 && t > p.duration {
		t = p.duration
	}
	p.position = t
}

// OnDurationKnown records resolved metadata.
func (p *TrackPlayer) OnDurationKnown(token uint64, d float64) {
	if token != p.token || math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return
	}
	p.duration = d
	if p.position > d {
		p.position = d
	}
}

// OnTrackEnded advances to the next track.
func (p *TrackPlayer) OnTrackEnded(token uint64) {
	if token != p.token {
		return
	}
	p.NextTrack()
}

// OnMediaReady resumes a play request issued before the media finished
// loading.
func (p *TrackPlayer) OnMediaReady(token uint64) {
	if token != p.token || !p.playing {
		return
	}
	p.requestPlay()
}

// FormatTime renders seconds as M:SS. NaN, zero and negative values render
// as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "0:00"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
