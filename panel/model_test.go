package panel

import (
	"context"
	"strings"
	"testing"

	"kodikey/applet"
	"kodikey/command"
	"kodikey/config"
	"kodikey/mediakeys"
	"kodikey/remote"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeService struct {
	grabs, releases int
}

func (f *fakeService) Grab(context.Context, string, uint32) error { f.grabs++; return nil }
func (f *fakeService) Release(context.Context, string) error      { f.releases++; return nil }
func (f *fakeService) Events() <-chan mediakeys.KeyEvent          { return nil }
func (f *fakeService) Close() error                               { return nil }

type fakeSender struct {
	sent []command.Command
}

func (f *fakeSender) Send(c command.Command) { f.sent = append(f.sent, c) }

func newTestModel() (*Model, *fakeService, *fakeSender, *remote.Dispatcher) {
	svc := &fakeService{}
	sender := &fakeSender{}
	d := remote.NewDispatcher()
	d.SetEndpoint(config.DefaultHost, config.DefaultPort, config.DefaultPath)
	m := NewModel(applet.New(svc, sender), d, nil, nil)
	return m, svc, sender, d
}

func TestActivationToggles(t *testing.T) {
	m, svc, _, _ := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != applet.Captured || svc.grabs != 1 {
		t.Fatalf("after enter: state = %v, grabs = %d", m.State(), svc.grabs)
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.State() != applet.Released || svc.releases != 1 {
		t.Fatalf("after space: state = %v, releases = %d", m.State(), svc.releases)
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.State() != applet.Captured || svc.grabs != 2 {
		t.Fatalf("after click: state = %v, grabs = %d", m.State(), svc.grabs)
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.State() != applet.Captured {
		t.Error("mouse release toggled the state")
	}
}

func TestKeyPressedDispatches(t *testing.T) {
	m, _, sender, _ := newTestModel()

	m.Update(KeyPressedMsg{Event: mediakeys.KeyEvent{App: mediakeys.RegistrationName, Key: "Next"}})
	m.Update(KeyPressedMsg{Event: mediakeys.KeyEvent{App: "other", Key: "Next"}})
	m.Update(KeyPressedMsg{Event: mediakeys.KeyEvent{App: mediakeys.RegistrationName, Key: "Shuffle"}})

	if len(sender.sent) != 1 || sender.sent[0] != command.Next {
		t.Fatalf("sent = %v, want [next]", sender.sent)
	}
	if !strings.Contains(m.View(), "next") {
		t.Error("view does not show the last command")
	}
}

func TestEndpointChangedUpdatesRemote(t *testing.T) {
	m, _, _, d := newTestModel()

	m.Update(EndpointChangedMsg{Endpoint: config.Endpoint{Host: "kodi.lan", Port: 80, Path: "jsonrpc"}})
	if got := d.BaseURL(); got != "http://kodi.lan/jsonrpc" {
		t.Errorf("BaseURL() = %q, want http://kodi.lan/jsonrpc", got)
	}
	if !strings.Contains(m.View(), "http://kodi.lan/jsonrpc") {
		t.Error("view does not show the new endpoint")
	}
}

func TestViewShowsTooltip(t *testing.T) {
	m, _, _, _ := newTestModel()

	if !strings.Contains(m.View(), "Click here to capture media keys") {
		t.Error("released view missing capture tooltip")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "Click here to release media keys") {
		t.Error("captured view missing release tooltip")
	}
}

func TestQuit(t *testing.T) {
	m, _, _, _ := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestWaitForKey(t *testing.T) {
	keys := make(chan mediakeys.KeyEvent, 1)
	keys <- mediakeys.KeyEvent{App: "xbmckey", Key: "Play"}

	msg := waitForKey(keys)()
	got, ok := msg.(KeyPressedMsg)
	if !ok || got.Event.Key != "Play" {
		t.Fatalf("waitForKey() = %#v", msg)
	}

	close(keys)
	if _, ok := waitForKey(keys)().(keysClosedMsg); !ok {
		t.Error("closed channel did not produce keysClosedMsg")
	}

	if waitForKey(nil) != nil {
		t.Error("nil channel should produce no command")
	}
}
