package command

import (
	"encoding/json"

	"github.com/go-errors/errors"
)

type Type string

const (
	// TypeMove carries a motion request.
	TypeMove Type = "move"
	// TypeStop halts both wheels.
	TypeStop Type = "stop"
)

// Command is one decoded control datagram.
type Command struct {
	Type Type

	// Forward and Turn hold the scalar motion request. Only valid when
	// Direct is false.
	Forward int
	Turn    int

	// Left and Right hold an explicit wheel pair. Only valid when
	// Direct is true.
	Left  int
	Right int

	// Direct marks a payload that addressed the wheels individually
	// instead of using the forward/turn form.
	Direct bool

	// Timestamp is the sender-supplied epoch time, if any. It is kept
	// for diagnostics only and must never feed safety decisions; the
	// watchdog times commands by their arrival instant on this host.
	Timestamp float64
}

// wireCommand mirrors the JSON payload. Pointer fields distinguish a
// missing field (defaults to 0) from an explicit value. The speed and
// direction keys are aliases kept for older senders.
type wireCommand struct {
	Command   string   `json:"command"`
	Forward   *int     `json:"forward"`
	Turn      *int     `json:"turn"`
	Speed     *int     `json:"speed"`
	Direction *int     `json:"direction"`
	Left      *int     `json:"left"`
	Right     *int     `json:"right"`
	Timestamp *float64 `json:"timestamp"`
}

// Parse decodes one datagram payload into a Command. Any error is a
// problem with this one payload and never fatal to the ingress loop.
func Parse(data []byte) (*Command, error) {
	var wire wireCommand

	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Errorf("could not decode payload: %v", err)
	}

	switch wire.Command {
	case "stop":
		return &Command{Type: TypeStop}, nil
	case "move":
	case "":
		return nil, errors.New("payload is missing the command field")
	default:
		return nil, errors.Errorf("unknown command %q", wire.Command)
	}

	cmd := &Command{Type: TypeMove}

	if wire.Timestamp != nil {
		cmd.Timestamp = *wire.Timestamp
	}

	if wire.Left != nil || wire.Right != nil {
		cmd.Direct = true
		cmd.Left = pick(wire.Left, nil)
		cmd.Right = pick(wire.Right, nil)
		return cmd, nil
	}

	cmd.Forward = pick(wire.Forward, wire.Speed)
	cmd.Turn = pick(wire.Turn, wire.Direction)

	return cmd, nil
}

// pick resolves a field and its legacy alias: an explicit primary wins,
// then the alias, then zero.
func pick(primary, alias *int) int {
	if primary != nil {
		return *primary
	}
	if alias != nil {
		return *alias
	}
	return 0
}
