package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/errors"
)

// EventKind names a drag event.
type EventKind string

// Script event kinds.
const (
	EventStart  EventKind = "start"
	EventMove   EventKind = "move"
	EventDrop   EventKind = "drop"
	EventCancel EventKind = "cancel"
)

// Event is one step of a drag script.
//
// Nodes and Primary apply to start events, X and Y to move events.
type Event struct {
	Kind    EventKind `json:"event" toml:"event"`
	Nodes   []string  `json:"nodes,omitempty" toml:"nodes,omitempty"`
	Primary string    `json:"primary,omitempty" toml:"primary,omitempty"`
	X       float64   `json:"x,omitempty" toml:"x,omitempty"`
	Y       float64   `json:"y,omitempty" toml:"y,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		if e.Primary != "" {
			return fmt.Sprintf("start %v (primary %s)", e.Nodes, e.Primary)
		}
		return fmt.Sprintf("start %v", e.Nodes)
	case EventMove:
		return fmt.Sprintf("move %g,%g", e.X, e.Y)
	}
	return string(e.Kind)
}

// Script is a replayable sequence of drag events.
type Script struct {
	Name   string  `json:"name,omitempty" toml:"name,omitempty"`
	Events []Event `json:"events" toml:"events"`
}

// Validate checks every event kind and that start events name nodes.
func (sc *Script) Validate() error {
	for i, e := range sc.Events {
		switch e.Kind {
		case EventStart:
			if len(e.Nodes) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "event %d: start without nodes", i+1)
			}
		case EventMove, EventDrop, EventCancel:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "event %d: unknown event %q", i+1, e.Kind)
		}
	}
	return nil
}

// ParseScript decodes and validates a script.
func ParseScript(data []byte, f Format) (*Script, error) {
	var sc Script
	if err := decode(bytes.NewReader(data), f, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ReadScript reads and validates the script at path.
func ReadScript(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sc, err := ParseScript(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Step is the outcome of one replayed event.
type Step struct {
	Index  int
	Event  Event
	Result drag.Result
}

// Play feeds every event to c in order and calls visit after each one.
// It stops at the first controller error or visit error.
func (sc *Script) Play(c *drag.Controller, visit func(Step) error) error {
	for i, e := range sc.Events {
		var (
			res drag.Result
			err error
		)
		switch e.Kind {
		case EventStart:
			res, err = c.Start(e.Nodes, e.Primary)
		case EventMove:
			res, err = c.Move(e.X, e.Y)
		case EventDrop:
			res, err = c.Drop()
		case EventCancel:
			res, err = c.Cancel()
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unknown event %q", e.Kind)
		}
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, e, err)
		}
		if visit != nil {
			if err := visit(Step{Index: i, Event: e, Result: res}); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTOML encodes sc as TOML.
func (sc *Script) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(sc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
