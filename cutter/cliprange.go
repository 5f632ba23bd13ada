package cutter

import (
	"errors"
	"fmt"
	"math"

	"github.com/user/video-cutter/pkg/timeutil"
)

var (
	// ErrNoSession is returned when an export is requested without a live
	// engine session.
	ErrNoSession = errors.New("No active session")
	// ErrInvalidFragment is returned for an empty, inverted or out of range
	// clip.
	ErrInvalidFragment = errors.New("Invalid fragment")
	// ErrNoFilename is returned when no output path was chosen.
	ErrNoFilename = errors.New("No filename")
)

// ClipRange is the selected [Start, End] interval in seconds.
type ClipRange struct {
	Start float64
	End   float64
}

// Length is End-Start. It is negative for an inverted range.
func (r ClipRange) Length() float64 {
	return r.End - r.Start
}

// Validate checks the range against the media duration. The order of the
// checks decides which error the user sees. Bounds that are not finite
// numbers never pass.
func (r ClipRange) Validate(duration float64) error {
	switch {
	case !finite(r.Start) || !finite(r.End) || math.IsNaN(duration):
		return ErrInvalidFragment
	case r.Start == r.End:
		return ErrInvalidFragment
	case r.Start > duration || r.End > duration:
		return ErrInvalidFragment
	case r.Start > r.End:
		return ErrInvalidFragment
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Summary renders the clip and the playback position for the status line.
func (r ClipRange) Summary(pos float64) string {
	return fmt.Sprintf("START: %s END: %s LENGTH: %s POS: %s",
		timeutil.FormatSeconds(r.Start),
		timeutil.FormatSeconds(r.End),
		timeutil.FormatSeconds(r.Length()),
		timeutil.FormatSeconds(pos),
	)
}
