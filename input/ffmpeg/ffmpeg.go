// Package ffmpeg captures through ffmpeg, one short recording per capture.
package ffmpeg

import (
	"fmt"

	"github.com/eteq/rp2040-spectro/input/common/execread"
)

type FFmpegBackend interface {
	InputArgs() []string
}

// Args builds the ffmpeg command line for a u8 stream on stdout.
func Args(b FFmpegBackend, rate float64, channels int) []string {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args, b.InputArgs()...)
	args = append(args,
		"-ar", fmt.Sprintf("%.0f", rate),
		"-ac", fmt.Sprintf("%d", channels),
		"-f", "u8",
		"-",
	)

	return args
}

func NewSource(b FFmpegBackend) *execread.Source {
	return execread.New(func(rate float64, channels int) []string {
		return Args(b, rate, channels)
	})
}
