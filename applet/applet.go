// Package applet holds the capture toggle and routes captured media keys to
// the remote dispatcher.
//
// An Applet is not safe for concurrent use. The panel calls every method from
// its event loop, which serializes activations and key events.
package applet

import (
	"context"
	"log"

	"kodikey/command"
	"kodikey/mediakeys"
)

type CaptureState int

const (
	Released CaptureState = iota
	Captured
)

const (
	IconPath    = "icon.png"
	IconAltPath = "icon_alt.png"
)

func (s CaptureState) String() string {
	if s == Captured {
		return "captured"
	}
	return "released"
}

// Icon is the panel icon shown while in state s.
func (s CaptureState) Icon() string {
	if s == Captured {
		return IconAltPath
	}
	return IconPath
}

// Tooltip describes what the next activation will do.
func (s CaptureState) Tooltip() string {
	if s == Captured {
		return "Click here to release media keys"
	}
	return "Click here to capture media keys"
}

// Sender forwards a command to the media center without waiting for it.
type Sender interface {
	Send(c command.Command)
}

type Applet struct {
	service   mediakeys.Service
	sender    Sender
	state     CaptureState
	observers []func(CaptureState)
}

func New(service mediakeys.Service, sender Sender) *Applet {
	return &Applet{
		service: service,
		sender:  sender,
		state:   Released,
	}
}

// OnStateChange registers fn to be called after every toggle.
func (a *Applet) OnStateChange(fn func(CaptureState)) {
	a.observers = append(a.observers, fn)
}

func (a *Applet) State() CaptureState {
	return a.state
}

// Toggle grabs the media keys when released and releases them when captured.
// The daemon call is not awaited and its failure does not undo the toggle.
func (a *Applet) Toggle(ctx context.Context) {
	switch a.state {
	case Released:
		a.state = Captured
		if err := a.service.Grab(ctx, mediakeys.RegistrationName, mediakeys.DefaultPriority); err != nil {
			log.Printf("Grab failed: %v", err)
		}
	case Captured:
		a.state = Released
		if err := a.service.Release(ctx, mediakeys.RegistrationName); err != nil {
			log.Printf("Release failed: %v", err)
		}
	}

	for _, fn := range a.observers {
		fn(a.state)
	}
}

// HandleKey dispatches ev if it was delivered to our grab and names a known
// media key. It reports the command that was sent.
func (a *Applet) HandleKey(ev mediakeys.KeyEvent) (command.Command, bool) {
	if ev.App != mediakeys.RegistrationName {
		return 0, false
	}
	c, ok := command.FromKey(ev.Key)
	if !ok {
		return 0, false
	}
	a.sender.Send(c)
	return c, true
}

// Close gives the media keys back if they are still held.
func (a *Applet) Close(ctx context.Context) error {
	if a.state != Captured {
		return nil
	}
	a.state = Released
	return a.service.Release(ctx, mediakeys.RegistrationName)
}
