package player

//go:generate mockgen -source=media.go -destination=mock_media_test.go -package=player

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTracks is returned when a player is built without tracks.
	ErrNoTracks = errors.New("track list is empty")
	// ErrPlaybackRejected marks a play request refused by the media backend.
	ErrPlaybackRejected = errors.New("playback rejected")
)

// Result is the outcome of an asynchronous play request: Ok when Err is nil,
// Rejected otherwise.
type Result struct {
	Token uint64
	Err   error
}

// OK reports whether playback started.
func (r Result) OK() bool { return r.Err == nil }

// Ok builds a successful result for the load identified by token.
func Ok(token uint64) Result { return Result{Token: token} }

// Rejected builds a failed result. The reason is wrapped with
// ErrPlaybackRejected.
func Rejected(token uint64, reason error) Result {
	if reason == nil {
		return Result{Token: token, Err: ErrPlaybackRejected}
	}
	if errors.Is(reason, ErrPlaybackRejected) {
		return Result{Token: token, Err: reason}
	}
	return Result{Token: token, Err: fmt.Errorf("%w: %w", ErrPlaybackRejected, reason)}
}

// String describes the result for status lines.
func (r Result) String() string {
	if r.OK() {
		return "ok"
	}
	return "rejected: " + r.Err.Error()
}

// Media is the audio playback capability a TrackPlayer drives. Loads are
// identified by the token Load returns; notifications about a load carry
// the same token.
type Media interface {
	// Load replaces the current media with source and returns its token.
	Load(source string) uint64
	// Play requests playback of the current media. done is called exactly
	// once, possibly from another goroutine.
	Play(done func(Result))
	// Pause halts playback, keeping the position.
	Pause()
	// Seek moves the playback position to seconds.
	Seek(seconds float64)
	// SetVolume sets the output gain in [0,1].
	SetVolume(volume float64)
}
