package command

// Command is one of the remote-control actions forwarded to the media center.
type Command int

const (
	PlayPause Command = iota
	Stop
	Next
	Previous
)

var names = map[Command]string{
	PlayPause: "playPause",
	Stop:      "stop",
	Next:      "next",
	Previous:  "previous",
}

// payloads holds the JSON-RPC request bodies, one per Command.
var payloads = map[Command]string{
	PlayPause: `{"jsonrpc":"2.0","method":"Player.PlayPause","id":1,"params":{"playerid":1}}`,
	Stop:      `{"jsonrpc":"2.0","method":"Player.Stop","id":1,"params":{"playerid":1}}`,
	Next:      `{"jsonrpc":"2.0","method":"Player.GoTo","id":1,"params":{"playerid":1,"to":"next"}}`,
	Previous:  `{"jsonrpc":"2.0","method":"Player.GoTo","id":1,"params":{"playerid":1,"to":"previous"}}`,
}

// keys maps media key names reported by the settings daemon to commands.
var keys = map[string]Command{
	"Play":     PlayPause,
	"Pause":    PlayPause,
	"Stop":     Stop,
	"Previous": Previous,
	"Next":     Next,
}

func (c Command) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "unknown"
}

// Payload returns the serialized JSON-RPC request for c.
func Payload(c Command) (string, bool) {
	p, ok := payloads[c]
	return p, ok
}

// FromKey resolves a media key name. Unknown keys report false.
func FromKey(key string) (Command, bool) {
	c, ok := keys[key]
	return c, ok
}

// All lists every Command in declaration order.
func All() []Command {
	return []Command{PlayPause, Stop, Next, Previous}
}
