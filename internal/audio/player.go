// Package audio decodes mp3 tracks and plays them through the sound card.
// Player implements player.Media; everything it learns about a load is
// reported on the Events channel tagged with the load's token.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"focusflow/internal/logging"
	"focusflow/internal/player"

	"github.com/hajimehoshi/go-mp3"
)

var (
	// ErrNotLoaded is reported when play is requested with no source loaded.
	ErrNotLoaded = errors.New("no track loaded")
	// ErrClosed is reported for requests after Close.
	ErrClosed = errors.New("audio player closed")
	// ErrPaused is reported for play requests still waiting on a load when
	// Pause is called.
	ErrPaused = errors.New("paused before the track was ready")
)

// Stream is decoded PCM that can be repositioned. *mp3.Decoder satisfies it.
type Stream interface {
	io.ReadSeeker
	SampleRate() int
	Length() int64
}

// Decoder turns fetched bytes into a Stream.
type Decoder func(data []byte) (Stream, error)

// DecodeMP3 is the default Decoder.
func DecodeMP3(data []byte) (Stream, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode mp3: %w", err)
	}
	return dec, nil
}

// Option configures a Player.
type Option func(*Player)

// WithFetcher replaces how sources are read.
func WithFetcher(f Fetcher) Option { return func(p *Player) { p.fetch = f } }

// WithDecoder replaces the mp3 decoder.
func WithDecoder(d Decoder) Option { return func(p *Player) { p.decode = d } }

// WithOutput replaces the sound card output.
func WithOutput(f OutputFactory) Option { return func(p *Player) { p.newOutput = f } }

// Player plays one track at a time. Methods are safe for concurrent use.
type Player struct {
	fetch     Fetcher
	decode    Decoder
	newOutput OutputFactory
	meter     *Meter

	events chan Event
	done   chan struct{}
	volume atomic.Uint64

	mu      sync.Mutex
	token   uint64
	cancel  chan struct{}
	stream  Stream
	offset  int64
	loadErr error
	pending []func(player.Result)
	session uint64
	playing bool
	closed  bool
}

// NewPlayer returns a Player writing to the sound card.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		fetch:     FetchSource,
		decode:    DecodeMP3,
		newOutput: OtoOutput,
		meter:     NewMeter(),
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
	}
	p.volume.Store(math.Float64bits(player.DefaultVolume))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Events delivers notifications. Position and level events are dropped
// when the channel is full.
func (p *Player) Events() <-chan Event { return p.events }

func (p *Player) emit(ev Event) {
	if ev.Kind.lossy() {
		select {
		case p.events <- ev:
		default:
		}
		return
	}
	select {
	case p.events <- ev:
	case <-p.done:
	}
}

// Load stops playback, abandons any load in flight and starts reading
// source in the background.
func (p *Player) Load(source string) uint64 {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0
	}
	p.stopLocked()
	if p.cancel != nil {
		close(p.cancel)
	}
	p.token++
	token := p.token
	cancel := make(chan struct{})
	p.cancel = cancel
	p.stream = nil
	p.offset = 0
	p.loadErr = nil
	superseded := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, done := range superseded {
		done(player.Rejected(token-1, ErrCancelled))
	}

	logging.Debugf("load #%d: %s", token, source)
	go p.load(token, source, cancel)
	return token
}

func (p *Player) load(token uint64, source string, cancel <-chan struct{}) {
	data, err := p.fetch(source, cancel)
	if err != nil {
		p.fail(token, err)
		return
	}

	meta, metaErr := ExtractMetadata(data)
	if metaErr != nil {
		logging.Debugf("load #%d: %v", token, metaErr)
	}

	stream, err := p.decode(data)
	if err != nil {
		p.fail(token, err)
		return
	}
	rate := stream.SampleRate()
	if rate <= 0 {
		p.fail(token, fmt.Errorf("invalid sample rate %d", rate))
		return
	}
	seconds := float64(stream.Length()) / float64(frameBytes*rate)

	p.mu.Lock()
	if token != p.token || p.closed {
		p.mu.Unlock()
		return
	}
	p.stream = stream
	waiting := p.pending
	p.pending = nil
	var startErr error
	if len(waiting) > 0 {
		startErr = p.startLocked()
	}
	p.mu.Unlock()

	if meta != nil {
		meta.Duration = time.Duration(seconds * float64(time.Second))
		p.emit(Event{Kind: EventMetadata, Token: token, Metadata: meta})
	}
	if seconds > 0 {
		p.emit(Event{Kind: EventDuration, Token: token, Value: seconds})
	}
	p.emit(Event{Kind: EventReady, Token: token})

	for _, done := range waiting {
		done(result(token, startErr))
	}
}

func (p *Player) fail(token uint64, err error) {
	if errors.Is(err, ErrCancelled) {
		return
	}
	p.mu.Lock()
	if token != p.token {
		p.mu.Unlock()
		return
	}
	p.loadErr = err
	waiting := p.pending
	p.pending = nil
	p.mu.Unlock()

	logging.Error(fmt.Sprintf("load #%d", token), err)
	p.emit(Event{Kind: EventFailed, Token: token, Err: err})
	for _, done := range waiting {
		done(player.Rejected(token, err))
	}
}

// Play starts playback of the current load. A request made while the load
// is still in flight completes once it finishes.
func (p *Player) Play(done func(player.Result)) {
	p.mu.Lock()
	token := p.token
	var err error
	switch {
	case p.closed:
		err = ErrClosed
	case token == 0:
		err = ErrNotLoaded
	case p.loadErr != nil:
		err = p.loadErr
	case p.stream == nil:
		p.pending = append(p.pending, done)
		p.mu.Unlock()
		return
	case !p.playing:
		err = p.startLocked()
	}
	p.mu.Unlock()

	done(result(token, err))
}

func result(token uint64, err error) player.Result {
	if err != nil {
		return player.Rejected(token, err)
	}
	return player.Ok(token)
}

func (p *Player) startLocked() error {
	out, err := p.newOutput(p.stream.SampleRate())
	if err != nil {
		return err
	}
	p.session++
	p.playing = true
	go p.run(p.token, p.session, p.stream.SampleRate(), out)
	return nil
}

func (p *Player) stopLocked() {
	if p.playing {
		p.session++
		p.playing = false
	}
}

// run copies PCM to out until the session changes or the stream ends.
func (p *Player) run(token, session uint64, rate int, out Output) {
	defer out.Close()

	buf := make([]byte, meterSize*frameBytes)
	var lastPosition, lastLevels time.Time

	for {
		p.mu.Lock()
		if session != p.session || p.stream == nil {
			p.mu.Unlock()
			return
		}
		n, err := io.ReadFull(p.stream, buf)
		p.offset += int64(n)
		offset := p.offset
		ended := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !ended {
			p.playing = false
			p.session++
		} else if ended {
			p.playing = false
		}
		p.mu.Unlock()

		if n > 0 {
			chunk := buf[:n]
			if time.Since(lastLevels) >= levelsInterval {
				lastLevels = time.Now()
				p.emit(Event{Kind: EventLevels, Token: token, Levels: p.meter.Levels(chunk)})
			}
			applyVolume(chunk, p.Volume())
			if _, werr := out.Write(chunk); werr != nil {
				logging.Error("audio output", werr)
				p.Pause()
				p.emit(Event{Kind: EventFailed, Token: token, Err: fmt.Errorf("audio output: %w", werr)})
				return
			}
		}

		if time.Since(lastPosition) >= positionInterval || ended {
			lastPosition = time.Now()
			p.emit(Event{Kind: EventPosition, Token: token, Value: float64(offset) / float64(frameBytes*rate)})
		}

		switch {
		case ended:
			logging.Debugf("load #%d: ended", token)
			p.emit(Event{Kind: EventEnded, Token: token})
			return
		case err != nil:
			p.fail(token, fmt.Errorf("decode error: %w", err))
			return
		}
	}
}

func applyVolume(pcm []byte, volume float64) {
	if volume >= 1 {
		return
	}
	for i := 0; i+1 < len(pcm); i += 2 {
		s := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		v := int16(float64(s) * volume)
		pcm[i] = byte(v)
		pcm[i+1] = byte(uint16(v) >> 8)
	}
}

// Pause stops playback at the current position. Play requests waiting on
// the load are rejected with ErrPaused so the load does not start playback.
func (p *Player) Pause() {
	p.mu.Lock()
	p.stopLocked()
	token := p.token
	waiting := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, done := range waiting {
		done(player.Rejected(token, ErrPaused))
	}
}

// Seek moves to seconds. It is ignored until the load is decoded.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	if p.stream == nil || math.IsNaN(seconds) {
		p.mu.Unlock()
		return
	}
	rate := p.stream.SampleRate()
	offset := int64(math.Max(seconds, 0)*float64(rate)) * frameBytes
	if length := p.stream.Length(); length > 0 && offset > length {
		offset = length - length%frameBytes
	}
	pos, err := p.stream.Seek(offset, io.SeekStart)
	if err == nil {
		p.offset = pos
	}
	token := p.token
	p.mu.Unlock()

	if err != nil {
		logging.Error("seek", err)
		return
	}
	p.emit(Event{Kind: EventPosition, Token: token, Value: float64(pos) / float64(frameBytes*rate)})
}

// SetVolume sets the output gain, clamped to [0,1].
func (p *Player) SetVolume(volume float64) {
	if math.IsNaN(volume) {
		return
	}
	p.volume.Store(math.Float64bits(math.Min(math.Max(volume, 0), 1)))
}

// Volume returns the output gain.
func (p *Player) Volume() float64 {
	return math.Float64frombits(p.volume.Load())
}

// Playing reports whether a playback session is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Close stops playback and abandons any load. Pending play requests are
// rejected.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.stopLocked()
	if p.cancel != nil {
		close(p.cancel)
		p.cancel = nil
	}
	token := p.token
	waiting := p.pending
	p.pending = nil
	close(p.done)
	p.mu.Unlock()

	for _, done := range waiting {
		done(player.Rejected(token, ErrClosed))
	}
	return nil
}
