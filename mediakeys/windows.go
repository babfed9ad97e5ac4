//go:build windows

package mediakeys

import hk "golang.design/x/hotkey"

const platformName = "Windows"

const (
	keyMediaNextTrack = hk.Key(0xB0)
	keyMediaPrevTrack = hk.Key(0xB1)
	keyMediaStop      = hk.Key(0xB2)
	keyMediaPlayPause = hk.Key(0xB3)
)

var platformBindings = []binding{
	{key: keyMediaPlayPause, name: "Play"},
	{key: keyMediaStop, name: "Stop"},
	{key: keyMediaNextTrack, name: "Next"},
	{key: keyMediaPrevTrack, name: "Previous"},
}
