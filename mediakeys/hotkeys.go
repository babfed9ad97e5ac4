//go:build darwin || windows

package mediakeys

import (
	"context"
	"fmt"
	"log"
	"sync"

	hk "golang.design/x/hotkey"
)

type binding struct {
	key  hk.Key
	name string
}

// hotkeyService emulates the settings daemon grab with global hotkeys. Only
// one registration name can own the keys at a time; a new grab replaces it.
type hotkeyService struct {
	mu       sync.Mutex
	bindings []binding
	owner    string
	active   []*hk.Hotkey
	stop     chan struct{}
	events   chan KeyEvent
	closed   bool
	// forwarders counts running forward goroutines so Close can close events.
	forwarders sync.WaitGroup
}

func Connect(_ Options) (Service, error) {
	return &hotkeyService{
		bindings: platformBindings,
		events:   make(chan KeyEvent, 16),
	}, nil
}

func (s *hotkeyService) Grab(_ context.Context, name string, _ uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("media key service closed")
	}
	if s.owner != "" {
		s.unregisterLocked()
	}

	stop := make(chan struct{})
	for _, b := range s.bindings {
		key := hk.New([]hk.Modifier{}, b.key)
		if err := key.Register(); err != nil {
			log.Printf("Failed to register %s hotkey: %v", b.name, err)
			continue
		}
		s.active = append(s.active, key)
		s.forwarders.Add(1)
		go s.forward(key, name, b.name, stop)
	}

	s.owner = name
	s.stop = stop
	log.Printf("%s media key listener started for %s (%d keys).", platformName, name, len(s.active))
	return nil
}

func (s *hotkeyService) Release(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner != name {
		return nil
	}
	s.unregisterLocked()
	log.Printf("%s media key listener stopped for %s.", platformName, name)
	return nil
}

func (s *hotkeyService) Events() <-chan KeyEvent {
	return s.events
}

func (s *hotkeyService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.unregisterLocked()
	s.closed = true
	s.forwarders.Wait()
	close(s.events)
	return nil
}

func (s *hotkeyService) unregisterLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	for _, key := range s.active {
		if err := key.Unregister(); err != nil {
			log.Printf("Failed to unregister hotkey: %v", err)
		}
	}
	s.active = nil
	s.owner = ""
}

func (s *hotkeyService) forward(key *hk.Hotkey, owner, keyName string, stop <-chan struct{}) {
	defer s.forwarders.Done()

	for {
		select {
		case <-stop:
			return
		case <-key.Keydown():
			select {
			case s.events <- KeyEvent{App: owner, Key: keyName}:
			case <-stop:
				return
			}
		}
	}
}
