// Package panel is the terminal stand-in for the desktop panel applet. It owns
// the event loop: activations, media key presses and endpoint changes all
// arrive as messages and are handled one at a time in Update.
package panel

import (
	"context"
	"log"
	"strings"
	"time"

	"kodikey/applet"
	"kodikey/config"
	"kodikey/mediakeys"

	tea "github.com/charmbracelet/bubbletea"
)

// Remote is the part of the dispatcher the panel reconfigures.
type Remote interface {
	SetEndpoint(host string, port int, path string)
	BaseURL() string
}

type (
	KeyPressedMsg struct {
		Event mediakeys.KeyEvent
	}

	EndpointChangedMsg struct {
		Endpoint config.Endpoint
	}

	keysClosedMsg struct{}
)

type Model struct {
	applet    *applet.Applet
	remote    Remote
	keys      <-chan mediakeys.KeyEvent
	endpoints <-chan config.Endpoint

	state       applet.CaptureState
	lastCommand string
	lastKeyAt   time.Time
	errorMsg    string
	styles      Styles
}

func NewModel(a *applet.Applet, remote Remote, keys <-chan mediakeys.KeyEvent, endpoints <-chan config.Endpoint) *Model {
	m := &Model{
		applet:    a,
		remote:    remote,
		keys:      keys,
		endpoints: endpoints,
		state:     a.State(),
		styles:    DefaultStyles(),
	}

	a.OnStateChange(func(s applet.CaptureState) {
		m.state = s
		log.Printf("Media keys %s", s)
	})

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForKey(m.keys),
		waitForEndpoint(m.endpoints),
	)
}

func waitForKey(keys <-chan mediakeys.KeyEvent) tea.Cmd {
	if keys == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-keys
		if !ok {
			return keysClosedMsg{}
		}
		return KeyPressedMsg{Event: ev}
	}
}

func waitForEndpoint(endpoints <-chan config.Endpoint) tea.Cmd {
	if endpoints == nil {
		return nil
	}
	return func() tea.Msg {
		ep, ok := <-endpoints
		if !ok {
			return nil
		}
		return EndpointChangedMsg{Endpoint: ep}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "enter":
			m.activate()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.activate()
		}

	case KeyPressedMsg:
		if c, ok := m.applet.HandleKey(msg.Event); ok {
			m.lastCommand = c.String()
			m.lastKeyAt = time.Now()
		}
		return m, waitForKey(m.keys)

	case keysClosedMsg:
		m.errorMsg = "media key service disconnected"

	case EndpointChangedMsg:
		ep := msg.Endpoint
		m.remote.SetEndpoint(ep.Host, ep.Port, ep.Path)
		return m, waitForEndpoint(m.endpoints)
	}

	return m, nil
}

func (m *Model) activate() {
	m.applet.Toggle(context.Background())
}

func (m *Model) State() applet.CaptureState {
	return m.state
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("kodikey"))
	b.WriteString("\n\n")

	stateStyle := m.styles.Released
	if m.state == applet.Captured {
		stateStyle = m.styles.Captured
	}
	b.WriteString(m.styles.Label.Render("Icon: "))
	b.WriteString(m.styles.Value.Render(m.state.Icon()))
	b.WriteString("  ")
	b.WriteString(stateStyle.Render(strings.ToUpper(m.state.String())))
	b.WriteString("\n")
	b.WriteString(m.styles.Tooltip.Render(m.state.Tooltip()))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Endpoint: "))
	b.WriteString(m.styles.Value.Render(m.remote.BaseURL()))
	b.WriteString("\n")

	b.WriteString(m.styles.Label.Render("Last command: "))
	if m.lastCommand == "" {
		b.WriteString(m.styles.Value.Render("-"))
	} else {
		b.WriteString(m.styles.Value.Render(m.lastCommand + " at " + m.lastKeyAt.Format("15:04:05")))
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.errorMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("space/enter/click: capture or release • q: quit"))

	return m.styles.Container.Render(b.String())
}
