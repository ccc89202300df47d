package gametypes

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InputKind discriminates input specs.
type InputKind string

const (
	InputNumber       InputKind = "number"
	InputBoolean      InputKind = "boolean"
	InputTeamSelect   InputKind = "team_select"
	InputPlayerSelect InputKind = "player_select"
	InputChoice       InputKind = "choice"
)

// ErrInvalidInput is returned for malformed input specs.
var ErrInvalidInput = errors.New("invalid input spec")

// Input is one field a player or referee fills in for a game.
type Input interface {
	Kind() InputKind
	StatKey() string
	// Accepts reports whether a submitted value is valid for this input.
	Accepts(v StatValue) bool
}

type inputBase struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (b inputBase) StatKey() string { return b.Key }

// NumberInput is a numeric field with optional bounds.
type NumberInput struct {
	inputBase
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (NumberInput) Kind() InputKind { return InputNumber }

func (n NumberInput) Accepts(v StatValue) bool {
	f, ok := v.Number()
	if !ok {
		return false
	}
	if n.Min != nil && f < *n.Min {
		return false
	}
	if n.Max != nil && f > *n.Max {
		return false
	}
	return true
}

// BooleanInput is a yes/no field.
type BooleanInput struct {
	inputBase
}

func (BooleanInput) Kind() InputKind { return InputBoolean }

func (BooleanInput) Accepts(v StatValue) bool {
	_, ok := v.Bool()
	return ok
}

// TeamSelectInput picks one team id.
type TeamSelectInput struct {
	inputBase
}

func (TeamSelectInput) Kind() InputKind { return InputTeamSelect }

func (TeamSelectInput) Accepts(v StatValue) bool {
	_, ok := v.Text()
	return ok
}

// PlayerSelectInput picks one player id.
type PlayerSelectInput struct {
	inputBase
}

func (PlayerSelectInput) Kind() InputKind { return InputPlayerSelect }

func (PlayerSelectInput) Accepts(v StatValue) bool {
	_, ok := v.Text()
	return ok
}

// ChoiceInput picks one of a fixed list of options.
type ChoiceInput struct {
	inputBase
	Options []string `json:"options"`
}

func (ChoiceInput) Kind() InputKind { return InputChoice }

func (c ChoiceInput) Accepts(v StatValue) bool {
	s, ok := v.Text()
	if !ok {
		return false
	}
	for _, o := range c.Options {
		if o == s {
			return true
		}
	}
	return false
}

type inputEnvelope struct {
	Type InputKind `json:"type"`
	Key  string    `json:"key"`
}

// ParseInputs decodes a JSON array of input specs into typed variants.
func ParseInputs(raw json.RawMessage) ([]Input, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	inputs := make([]Input, 0, len(items))
	seen := map[string]bool{}
	for i, item := range items {
		var env inputEnvelope
		if err := json.Unmarshal(item, &env); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidInput, i, err)
		}
		if env.Key == "" {
			return nil, fmt.Errorf("%w: item %d has no key", ErrInvalidInput, i)
		}
		if seen[env.Key] {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidInput, env.Key)
		}
		seen[env.Key] = true

		var (
			in  Input
			err error
		)
		switch env.Type {
		case InputNumber:
			var n NumberInput
			err = json.Unmarshal(item, &n)
			in = n
		case InputBoolean:
			var b BooleanInput
			err = json.Unmarshal(item, &b)
			in = b
		case InputTeamSelect:
			var ts TeamSelectInput
			err = json.Unmarshal(item, &ts)
			in = ts
		case InputPlayerSelect:
			var ps PlayerSelectInput
			err = json.Unmarshal(item, &ps)
			in = ps
		case InputChoice:
			var c ChoiceInput
			err = json.Unmarshal(item, &c)
			if err == nil && len(c.Options) == 0 {
				err = errors.New("choice input needs options")
			}
			in = c
		default:
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, env.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidInput, i, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
