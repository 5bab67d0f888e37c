// Package all imports all host backends implemented by the input package.
package all

import (
	_ "github.com/eteq/rp2040-spectro/input/ffmpeg"
	_ "github.com/eteq/rp2040-spectro/input/parec"
	_ "github.com/eteq/rp2040-spectro/input/stdinput"
	_ "github.com/eteq/rp2040-spectro/input/synth"
)
