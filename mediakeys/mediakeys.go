// Package mediakeys talks to the platform service that owns the keyboard media
// keys. A client grabs the keys under a registration name and then receives
// every press as a KeyEvent tagged with the name of the current owner.
package mediakeys

import "context"

// RegistrationName identifies this application's grab to the settings daemon.
const RegistrationName = "xbmckey"

// DefaultPriority is the grab priority passed along with RegistrationName.
const DefaultPriority uint32 = 0

// KeyEvent is a single media key press. App is the registration name the
// service delivered it to, Key the daemon's key name (Play, Pause, Stop, ...).
type KeyEvent struct {
	App string
	Key string
}

// Service is the media key grab API. Grab and Release are fire-and-forget: an
// error return only reports that the request could not be issued.
type Service interface {
	Grab(ctx context.Context, name string, priority uint32) error
	Release(ctx context.Context, name string) error
	Events() <-chan KeyEvent
	Close() error
}

// Options selects the D-Bus endpoint of the settings daemon. Platforms without
// D-Bus ignore it.
type Options struct {
	Destination string
	Path        string
	Interface   string
}

// GnomeOptions targets gnome-settings-daemon.
func GnomeOptions() Options {
	return Options{
		Destination: "org.gnome.SettingsDaemon",
		Path:        "/org/gnome/SettingsDaemon/MediaKeys",
		Interface:   "org.gnome.SettingsDaemon.MediaKeys",
	}
}

// CinnamonOptions targets cinnamon-settings-daemon, which keeps the GNOME
// interface under its own bus name.
func CinnamonOptions() Options {
	return Options{
		Destination: "org.cinnamon.SettingsDaemon",
		Path:        "/org/cinnamon/SettingsDaemon/MediaKeys",
		Interface:   "org.cinnamon.SettingsDaemon.MediaKeys",
	}
}

func (o Options) withDefaults() Options {
	def := GnomeOptions()
	if o.Destination == "" {
		o.Destination = def.Destination
	}
	if o.Path == "" {
		o.Path = def.Path
	}
	if o.Interface == "" {
		o.Interface = def.Interface
	}
	return o
}
