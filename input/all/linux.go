//go:build linux

package all

import _ "github.com/eteq/rp2040-spectro/input/mcp3008"
