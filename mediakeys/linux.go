//go:build linux

package mediakeys

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

const keyPressedMember = "MediaPlayerKeyPressed"

type dbusService struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	opts    Options
	signals chan *dbus.Signal
	events  chan KeyEvent
	done    chan struct{}
	once    sync.Once
}

// Connect opens a private session bus connection to the settings daemon and
// starts listening for MediaPlayerKeyPressed signals.
func Connect(opts Options) (Service, error) {
	opts = opts.withDefaults()

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbus.ObjectPath(opts.Path)),
		dbus.WithMatchInterface(opts.Interface),
		dbus.WithMatchMember(keyPressedMember),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", keyPressedMember, err)
	}

	s := &dbusService{
		conn:    conn,
		obj:     conn.Object(opts.Destination, dbus.ObjectPath(opts.Path)),
		opts:    opts,
		signals: make(chan *dbus.Signal, 16),
		events:  make(chan KeyEvent, 16),
		done:    make(chan struct{}),
	}
	conn.Signal(s.signals)

	go s.listen()

	log.Printf("D-Bus: listening for media keys on %s %s", opts.Destination, opts.Path)
	return s, nil
}

func (s *dbusService) Grab(ctx context.Context, name string, priority uint32) error {
	call := s.obj.GoWithContext(ctx, s.opts.Interface+".GrabMediaPlayerKeys", dbus.FlagNoReplyExpected, nil, name, priority)
	if call.Err != nil {
		return fmt.Errorf("failed to grab media keys: %w", call.Err)
	}
	log.Printf("D-Bus: GrabMediaPlayerKeys(%s, %d) sent", name, priority)
	return nil
}

func (s *dbusService) Release(ctx context.Context, name string) error {
	call := s.obj.GoWithContext(ctx, s.opts.Interface+".ReleaseMediaPlayerKeys", dbus.FlagNoReplyExpected, nil, name)
	if call.Err != nil {
		return fmt.Errorf("failed to release media keys: %w", call.Err)
	}
	log.Printf("D-Bus: ReleaseMediaPlayerKeys(%s) sent", name)
	return nil
}

func (s *dbusService) Events() <-chan KeyEvent {
	return s.events
}

func (s *dbusService) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.conn.RemoveSignal(s.signals)
		err = s.conn.Close()
	})
	return err
}

func (s *dbusService) listen() {
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case sig, ok := <-s.signals:
			if !ok {
				return
			}
			ev, ok := decodeKeyPressed(sig, s.opts.Interface)
			if !ok {
				continue
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}
}

func decodeKeyPressed(sig *dbus.Signal, iface string) (KeyEvent, bool) {
	if sig == nil || sig.Name != iface+"."+keyPressedMember {
		return KeyEvent{}, false
	}

	var ev KeyEvent
	if err := dbus.Store(sig.Body, &ev.App, &ev.Key); err != nil {
		log.Printf("D-Bus: malformed %s signal: %v", keyPressedMember, err)
		return KeyEvent{}, false
	}
	return ev, true
}
