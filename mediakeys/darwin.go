//go:build darwin

package mediakeys

import hk "golang.design/x/hotkey"

const platformName = "macOS"

// The hardware media keys are not exposed as hotkeys on macOS; F7/F8/F9 are
// the keys they share.
const (
	keyF7 = hk.Key(98)
	keyF8 = hk.Key(100)
	keyF9 = hk.Key(101)
)

var platformBindings = []binding{
	{key: keyF8, name: "Play"},
	{key: keyF9, name: "Next"},
	{key: keyF7, name: "Previous"},
}
