package export

import (
	"fmt"
	"sort"
	"strings"
)

// Format names an export preset.
type Format string

const (
	// FormatMP4 is H.264 in MP4, scaled to fit 1280x720.
	FormatMP4 Format = "mp4"
	// FormatWebM is VP9 in WebM, scaled to fit 512x512.
	FormatWebM Format = "webm"
)

// Preset holds the encoder settings for one export format.
type Preset struct {
	Format      Format
	Label       string
	Extension   string
	VideoCodec  string
	PixelFormat string
	CRF         int
	Speed       string
	MaxWidth    int
	MaxHeight   int
}

// ScaleFilter shrinks the video to fit MaxWidth x MaxHeight, never upscales,
// and keeps the height even.
func (p Preset) ScaleFilter() string {
	return fmt.Sprintf(`scale=iw*min(1\,min(%d/iw\,%d/ih)):-2`, p.MaxWidth, p.MaxHeight)
}

// WithOverrides returns a copy of p with a non-zero crf and a non-empty speed
// applied.
func (p Preset) WithOverrides(crf int, speed string) Preset {
	if crf > 0 {
		p.CRF = crf
	}
	if speed != "" {
		p.Speed = speed
	}
	return p
}

// Presets are the built-in export formats.
var Presets = map[Format]Preset{
	FormatMP4: {
		Format:      FormatMP4,
		Label:       "MP4",
		Extension:   ".mp4",
		VideoCodec:  "libx264",
		PixelFormat: "yuv420p",
		CRF:         22,
		Speed:       "slow",
		MaxWidth:    1280,
		MaxHeight:   720,
	},
	FormatWebM: {
		Format:      FormatWebM,
		Label:       "WebM",
		Extension:   ".webm",
		VideoCodec:  "libvpx-vp9",
		PixelFormat: "yuva420p",
		CRF:         22,
		Speed:       "slow",
		MaxWidth:    512,
		MaxHeight:   512,
	},
}

// Formats returns the known formats in a stable order.
func Formats() []Format {
	formats := make([]Format, 0, len(Presets))
	for f := range Presets {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Lookup finds the preset for a format name, case-insensitively.
func Lookup(name string) (Preset, error) {
	p, ok := Presets[Format(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return Preset{}, fmt.Errorf("unknown export format %q (want one of %v)", name, Formats())
	}
	return p, nil
}
